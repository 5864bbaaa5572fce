// Package publisher applies validated documents to the search index and
// invalidates cached query results afterwards.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion/validator"
)

// Index is the write side of the search server.
type Index interface {
	AddDocument(id int, text string, status document.Status, ratings []int) error
	DocumentCount() int
}

type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Publisher struct {
	index       Index
	invalidator Invalidator
	logger      *slog.Logger
}

// New creates a Publisher. invalidator may be nil when caching is off.
func New(index Index, invalidator Invalidator) *Publisher {
	return &Publisher{
		index:       index,
		invalidator: invalidator,
		logger:      slog.Default().With("component", "publisher"),
	}
}

// Ingest adds one document. The cache is invalidated after every accepted
// document; a failed invalidation is logged and does not fail the call.
func (p *Publisher) Ingest(ctx context.Context, req *ingestion.IngestRequest) (*ingestion.IngestResponse, error) {
	if err := validator.ValidateIngestRequest(req); err != nil {
		return nil, err
	}
	id := *req.ID
	if err := p.index.AddDocument(id, req.Text, req.Status, req.Ratings); err != nil {
		return nil, fmt.Errorf("adding document %d: %w", id, err)
	}
	p.invalidate(ctx)
	return &ingestion.IngestResponse{
		DocumentID:    id,
		Status:        req.Status.String(),
		Rating:        indexer.ComputeAverageRating(req.Ratings),
		DocumentCount: p.index.DocumentCount(),
	}, nil
}

// IngestAll adds every document of corpus in order and stops at the first
// failure. It returns the number of documents added.
func (p *Publisher) IngestAll(ctx context.Context, corpus *ingestion.Corpus) (added int, err error) {
	defer func() {
		if added > 0 {
			p.invalidate(ctx)
		}
	}()
	for i := range corpus.Documents {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		req := &corpus.Documents[i]
		if err := validator.ValidateIngestRequest(req); err != nil {
			return added, fmt.Errorf("corpus document %d: %w", i, err)
		}
		if err := p.index.AddDocument(*req.ID, req.Text, req.Status, req.Ratings); err != nil {
			return added, fmt.Errorf("corpus document %d: %w", i, err)
		}
		added++
	}
	p.logger.Info("corpus loaded", "documents", added, "total", p.index.DocumentCount())
	return added, nil
}

func (p *Publisher) invalidate(ctx context.Context) {
	if p.invalidator == nil {
		return
	}
	if err := p.invalidator.Invalidate(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Warn("cache invalidation failed", "error", err)
	}
}
