// Package indexer owns the write path: it validates incoming documents,
// removes stop words, and commits them to the document store and the
// inverted index.
package indexer

import (
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type Engine struct {
	memIndex  *index.MemoryIndex
	store     *index.DocumentStore
	stopWords tokenizer.StopWords
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(stopWords tokenizer.StopWords, opts ...Option) *Engine {
	e := &Engine{
		memIndex:  index.NewMemoryIndex(),
		store:     index.NewDocumentStore(),
		stopWords: stopWords,
		logger:    slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddDocument ingests one document. All checks run before the first write,
// so a rejected document leaves the engine unchanged.
func (e *Engine) AddDocument(id int, text string, status document.Status, ratings []int) error {
	if err := e.validate(id, text); err != nil {
		if e.metrics != nil {
			e.metrics.DocsRejectedTotal.Inc()
		}
		e.logger.Debug("document rejected", "doc_id", id, "error", err)
		return err
	}

	words := e.stopWords.SplitNoStop(text)
	e.memIndex.AddDocument(id, words)
	e.store.Add(id, index.DocumentData{
		Rating: ComputeAverageRating(ratings),
		Status: status,
	})

	if e.metrics != nil {
		e.metrics.DocsIndexedTotal.Inc()
		e.metrics.IndexedTerms.Set(float64(e.memIndex.TermCount()))
	}
	e.logger.Debug("document indexed",
		"doc_id", id,
		"status", status,
		"word_count", len(words),
		"terms", e.memIndex.TermCount(),
	)
	return nil
}

func (e *Engine) validate(id int, text string) error {
	if id < 0 {
		return apperrors.InvalidArgumentf("document id %d is negative", id)
	}
	if e.store.Has(id) {
		return fmt.Errorf("%w: document id %d: %w", apperrors.ErrInvalidArgument, id, apperrors.ErrDocumentExists)
	}
	for _, word := range tokenizer.SplitIntoWords(text) {
		if !tokenizer.IsValidWord(word) {
			return apperrors.InvalidArgumentf("document %d: word %q contains control characters", id, word)
		}
	}
	return nil
}

// ComputeAverageRating is the mean of ratings truncated toward zero, or 0
// for no ratings.
func ComputeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}

func (e *Engine) DocumentCount() int {
	return e.store.Count()
}

// DocumentIDAt returns the id of the index-th ingested document.
func (e *Engine) DocumentIDAt(index int) (int, error) {
	return e.store.IDAt(index)
}

func (e *Engine) Document(id int) (index.DocumentData, bool) {
	return e.store.Get(id)
}

func (e *Engine) Index() *index.MemoryIndex {
	return e.memIndex
}

func (e *Engine) StopWords() tokenizer.StopWords {
	return e.stopWords
}
