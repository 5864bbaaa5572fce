// Package analytics tracks how many recent search requests came back empty.
package analytics

import (
	"log/slog"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// MinutesInDay is the window length in ticks. Every recorded request
// advances the clock by one tick.
const MinutesInDay = 1440

// Searcher is the query surface the queue forwards to.
type Searcher interface {
	FindTopDocuments(raw string) ([]document.Document, error)
	FindTopDocumentsByStatus(raw string, status document.Status) ([]document.Document, error)
	FindTopDocumentsFunc(raw string, accept document.Predicate) ([]document.Document, error)
}

type queryResult struct {
	tick    uint64
	results int
}

// Stats is a point-in-time view of the window.
type Stats struct {
	Tick             uint64 `json:"tick"`
	Retained         int    `json:"retained"`
	NoResultRequests int    `json:"no_result_requests"`
	Window           int    `json:"window"`
}

type RequestQueue struct {
	mu       sync.Mutex
	searcher Searcher
	requests []queryResult
	tick     uint64
	noResult int

	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*RequestQueue)

func WithMetrics(m *metrics.Metrics) Option {
	return func(q *RequestQueue) { q.metrics = m }
}

func NewRequestQueue(searcher Searcher, opts ...Option) *RequestQueue {
	q := &RequestQueue{
		searcher: searcher,
		requests: make([]queryResult, 0, MinutesInDay),
		logger:   slog.Default().With("component", "request-queue"),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// AddFindRequestFunc runs the query and records its result count. A failed
// query is returned unrecorded.
func (q *RequestQueue) AddFindRequestFunc(raw string, accept document.Predicate) ([]document.Document, error) {
	docs, err := q.searcher.FindTopDocumentsFunc(raw, accept)
	return q.record(raw, docs, err)
}

func (q *RequestQueue) AddFindRequestByStatus(raw string, status document.Status) ([]document.Document, error) {
	docs, err := q.searcher.FindTopDocumentsByStatus(raw, status)
	return q.record(raw, docs, err)
}

func (q *RequestQueue) AddFindRequest(raw string) ([]document.Document, error) {
	docs, err := q.searcher.FindTopDocuments(raw)
	return q.record(raw, docs, err)
}

func (q *RequestQueue) record(raw string, docs []document.Document, err error) ([]document.Document, error) {
	if err != nil {
		return nil, err
	}
	q.Record(len(docs))
	if len(docs) == 0 {
		q.logger.Debug("request returned no results", "query", raw)
	}
	return docs, nil
}

// Record advances the clock by one tick, drops requests that fell out of
// the window and stores a request that returned results documents.
func (q *RequestQueue) Record(results int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.tick++
	evict := 0
	for evict < len(q.requests) && q.tick-q.requests[evict].tick >= MinutesInDay {
		if q.requests[evict].results == 0 {
			q.noResult--
		}
		evict++
	}
	if evict > 0 {
		q.requests = append(q.requests[:0], q.requests[evict:]...)
	}

	q.requests = append(q.requests, queryResult{tick: q.tick, results: results})
	if results == 0 {
		q.noResult++
	}

	if q.metrics != nil {
		q.metrics.NoResultRequests.Set(float64(q.noResult))
	}
}

// NoResultRequests is the number of requests in the window that returned
// nothing.
func (q *RequestQueue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.noResult
}

func (q *RequestQueue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Tick:             q.tick,
		Retained:         len(q.requests),
		NoResultRequests: q.noResult,
		Window:           MinutesInDay,
	}
}
