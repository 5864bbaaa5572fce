package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/analytics"
	ingesthandler "github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion/handler"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion/publisher"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/handler"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/middleware"
	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/resilience"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search, ingestion and analytics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				root.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, root.cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (default from config)")
	return cmd
}

// app is the wired serve-mode object graph.
type app struct {
	handler  http.Handler
	registry *prometheus.Registry
	redis    *pkgredis.Client
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	server, err := buildServer(ctx, cfg, m)
	if err != nil {
		return nil, err
	}
	locked := searcher.NewLocked(server)
	queue := analytics.NewRequestQueue(locked, analytics.WithMetrics(m))

	a := &app{registry: registry}
	var queryCache *cache.QueryCache
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		queryCache = cache.New(cache.NewMemoryBackend(cfg.Cache.Size), cfg.Cache.TTL, cache.WithMetrics(m))
	case config.CacheBackendRedis:
		var client *pkgredis.Client
		err := resilience.Retry(ctx, "redis connect", resilience.RetryConfig{MaxAttempts: 3}, func(ctx context.Context) error {
			c, err := pkgredis.NewClient(ctx, cfg.Redis)
			client = c
			return err
		})
		if err != nil {
			slog.Warn("redis unavailable, search caching disabled", "error", err)
			break
		}
		a.redis = client
		breaker := resilience.NewCircuitBreaker("redis-cache", resilience.CircuitBreakerConfig{})
		queryCache = cache.New(cache.NewRedisBackend(client, breaker), cfg.Cache.TTL, cache.WithMetrics(m))
	}
	if queryCache != nil {
		slog.Info("search cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	}

	// Keep a nil *QueryCache out of the Invalidator interface.
	var pub *publisher.Publisher
	if queryCache != nil {
		pub = publisher.New(locked, queryCache)
	} else {
		pub = publisher.New(locked, nil)
	}

	checker := health.NewChecker()
	checker.Register("index", health.DocumentsCheck(locked.DocumentCount))
	if a.redis != nil {
		checker.Register("redis", health.PingCheck(a.redis))
	}

	searchH := handler.New(locked, queryCache, queue, cfg.Search.DefaultStatus)
	ingestH := ingesthandler.New(pub)
	analyticsH := analytics.NewHandler(queue)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/search", searchH.Search)
	mux.HandleFunc("GET /api/v1/documents/{id}/match", searchH.Match)
	mux.HandleFunc("GET /api/v1/documents/{id}/terms", searchH.TermFrequencies)
	mux.HandleFunc("POST /api/v1/documents", ingestH.Ingest)
	mux.HandleFunc("GET /api/v1/cache/stats", searchH.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", searchH.CacheInvalidate)
	mux.HandleFunc("GET /api/v1/analytics", analyticsH.Stats)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	var chain http.Handler = mux
	chain = middleware.Timeout(cfg.Server.RequestTimeout)(chain)
	chain = middleware.Metrics(m)(chain)
	chain = middleware.RequestID(chain)
	a.handler = chain
	return a, nil
}

func (a *app) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("search server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port, a.registry)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return shutdownMetrics(shutdownCtx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	slog.Info("search server stopped")
	return err
}
