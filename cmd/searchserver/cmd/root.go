// Package cmd provides the CLI commands of searchserver.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion/publisher"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// rootOptions holds the persistent flags and the configuration they
// resolve to.
type rootOptions struct {
	configPath string
	stopWords  string
	corpusPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command of the searchserver CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "searchserver",
		Short: "In-memory TF-IDF search over short documents",
		Long: `searchserver indexes a corpus of short documents and answers ranked
queries with required and excluded terms.

Examples:
  searchserver search --corpus corpus.yaml "fluffy cat" "dog -collar"
  searchserver match --corpus corpus.yaml 3 "cat -collar"
  searchserver serve --config config.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&opts.stopWords, "stop-words", "", "Space separated stop words (overrides config and corpus)")
	flags.StringVar(&opts.corpusPath, "corpus", "", "Path to a YAML or JSON corpus file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: json, text")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newMatchCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("stop-words") {
		cfg.Search.StopWords = o.stopWords
	}
	if o.corpusPath != "" {
		cfg.Search.CorpusPath = o.corpusPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	logger.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	o.cfg = cfg
	return nil
}

// buildServer creates a search server and loads the configured corpus into
// it. Stop words come from the config when set there, else from the corpus.
func buildServer(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*searcher.Server, error) {
	var corpus *ingestion.Corpus
	if cfg.Search.CorpusPath != "" {
		c, err := ingestion.LoadCorpus(cfg.Search.CorpusPath)
		if err != nil {
			return nil, err
		}
		corpus = c
	}

	stopWords := cfg.Search.StopWords
	if stopWords == "" && corpus != nil {
		stopWords = corpus.StopWords
	}
	server, err := searcher.NewFromText(stopWords, searcher.WithMetrics(m))
	if err != nil {
		return nil, fmt.Errorf("stop words: %w", err)
	}
	if corpus == nil {
		return server, nil
	}

	if _, err := publisher.New(server, nil).IngestAll(ctx, corpus); err != nil {
		return nil, err
	}
	slog.Debug("search server ready",
		"documents", server.DocumentCount(),
		"stop_words", server.StopWords().Len(),
	)
	return server, nil
}
