package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/cache"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

// Searcher is the read side of the search server.
type Searcher interface {
	FindTopDocumentsByStatus(raw string, status document.Status) ([]document.Document, error)
	MatchDocument(raw string, id int) ([]string, document.Status, error)
	TermFrequencies(id int) map[string]float64
}

// Tracker records the result count of every answered search.
type Tracker interface {
	Record(results int)
}

type SearchResponse struct {
	Query    string              `json:"query"`
	Status   string              `json:"status"`
	Results  []document.Document `json:"results"`
	CacheHit bool                `json:"cache_hit"`
}

type MatchResponse struct {
	DocumentID int      `json:"document_id"`
	Terms      []string `json:"terms"`
	Status     string   `json:"status"`
}

type Handler struct {
	searcher      Searcher
	cache         *cache.QueryCache
	tracker       Tracker
	defaultStatus document.Status
	logger        *slog.Logger
}

// New creates a Handler. queryCache and tracker may be nil.
func New(s Searcher, queryCache *cache.QueryCache, tracker Tracker, defaultStatus document.Status) *Handler {
	return &Handler{
		searcher:      s,
		cache:         queryCache,
		tracker:       tracker,
		defaultStatus: defaultStatus,
		logger:        slog.Default().With("component", "search-handler"),
	}
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	status := h.defaultStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := document.ParseStatus(s)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}

	compute := func() ([]document.Document, error) {
		return h.searcher.FindTopDocumentsByStatus(query, status)
	}
	var (
		results  []document.Document
		cacheHit bool
		err      error
	)
	if h.cache != nil {
		results, cacheHit, err = h.cache.GetOrCompute(ctx, query, status, compute)
	} else {
		results, err = compute()
	}
	if err != nil {
		code := apperrors.HTTPStatusCode(err)
		log.Warn("search failed", "query", query, "error", err, "status_code", code)
		h.writeError(w, code, err.Error())
		return
	}
	if h.tracker != nil {
		h.tracker.Record(len(results))
	}

	log.Info("search completed",
		"query", query,
		"status", status,
		"returned", len(results),
		"cache_hit", cacheHit,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, SearchResponse{
		Query:    query,
		Status:   status.String(),
		Results:  results,
		CacheHit: cacheHit,
	})
}

func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")
	terms, status, err := h.searcher.MatchDocument(query, id)
	if err != nil {
		h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, MatchResponse{
		DocumentID: id,
		Terms:      terms,
		Status:     status.String(),
	})
}

// TermFrequencies answers with an empty object for unknown documents.
func (h *Handler) TermFrequencies(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	freqs := h.searcher.TermFrequencies(id)
	if freqs == nil {
		freqs = map[string]float64{}
	}
	h.writeJSON(w, http.StatusOK, freqs)
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}

	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) documentID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "document id must be an integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
