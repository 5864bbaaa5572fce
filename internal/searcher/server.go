// Package searcher answers ranked queries and match requests over the
// documents held by an indexer.Engine.
package searcher

import (
	"log/slog"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Server is not safe for concurrent use; wrap it in Locked for that.
type Server struct {
	engine  *indexer.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Server)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(stopWords tokenizer.StopWords, opts ...Option) *Server {
	s := &Server{
		logger: slog.Default().With("component", "search-server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = indexer.NewEngine(stopWords, indexer.WithMetrics(s.metrics))
	return s
}

// NewFromText builds a server whose stop words are the space separated
// words of text.
func NewFromText(text string, opts ...Option) (*Server, error) {
	stopWords, err := tokenizer.ParseStopWords(text)
	if err != nil {
		return nil, err
	}
	return New(stopWords, opts...), nil
}

func NewFromWords(words []string, opts ...Option) (*Server, error) {
	stopWords, err := tokenizer.NewStopWords(words)
	if err != nil {
		return nil, err
	}
	return New(stopWords, opts...), nil
}

func (s *Server) AddDocument(id int, text string, status document.Status, ratings []int) error {
	return s.engine.AddDocument(id, text, status, ratings)
}

// FindTopDocumentsFunc returns up to ranker.MaxResultDocumentCount documents
// relevant to raw that pass accept.
func (s *Server) FindTopDocumentsFunc(raw string, accept document.Predicate) ([]document.Document, error) {
	query, err := parser.Parse(raw, s.engine.StopWords())
	if err != nil {
		s.metrics.ObserveSearch(0, err)
		return nil, err
	}
	results := s.findAllDocuments(query, accept)
	s.metrics.ObserveSearch(len(results), nil)
	s.logger.Debug("search completed",
		"query", raw,
		"plus_terms", len(query.PlusTerms),
		"minus_terms", len(query.MinusTerms),
		"returned", len(results),
	)
	return results, nil
}

func (s *Server) FindTopDocumentsByStatus(raw string, status document.Status) ([]document.Document, error) {
	return s.FindTopDocumentsFunc(raw, document.ByStatus(status))
}

func (s *Server) FindTopDocuments(raw string) ([]document.Document, error) {
	return s.FindTopDocumentsByStatus(raw, document.StatusActual)
}

func (s *Server) findAllDocuments(query *parser.Query, accept document.Predicate) []document.Document {
	memIndex := s.engine.Index()

	docsPerTerm := make(map[string]index.TermDocs, len(query.PlusTerms))
	for term := range query.PlusTerms {
		if docs := memIndex.TermDocs(term); len(docs) > 0 {
			docsPerTerm[term] = docs
		}
	}
	excluded := make(map[int]struct{})
	for term := range query.MinusTerms {
		for docID := range memIndex.TermDocs(term) {
			excluded[docID] = struct{}{}
		}
	}

	return ranker.Rank(
		docsPerTerm,
		excluded,
		ranker.RankParams{TotalDocs: s.engine.DocumentCount()},
		s.docInfo,
		accept,
		ranker.MaxResultDocumentCount,
	)
}

func (s *Server) docInfo(docID int) ranker.DocInfo {
	data, _ := s.engine.Document(docID)
	return ranker.DocInfo{Rating: data.Rating, Status: data.Status}
}

// MatchDocument reports which plus terms of raw occur in document id, along
// with its status. Any minus term occurring in the document empties the list.
// The query is parsed before the id is checked.
func (s *Server) MatchDocument(raw string, id int) ([]string, document.Status, error) {
	query, err := parser.Parse(raw, s.engine.StopWords())
	if err != nil {
		return nil, 0, err
	}
	data, ok := s.engine.Document(id)
	if !ok {
		return nil, 0, apperrors.OutOfRangef("document id %d not found", id)
	}

	memIndex := s.engine.Index()
	for term := range query.MinusTerms {
		if memIndex.Contains(term, id) {
			return []string{}, data.Status, nil
		}
	}
	matched := make([]string, 0, len(query.PlusTerms))
	for term := range query.PlusTerms {
		if memIndex.Contains(term, id) {
			matched = append(matched, term)
		}
	}
	slices.Sort(matched)
	return matched, data.Status, nil
}

func (s *Server) DocumentCount() int {
	return s.engine.DocumentCount()
}

// DocumentID returns the id of the index-th added document.
func (s *Server) DocumentID(index int) (int, error) {
	return s.engine.DocumentIDAt(index)
}

// TermFrequencies returns a copy of the term frequencies of document id, or
// an empty map when the document is unknown.
func (s *Server) TermFrequencies(id int) map[string]float64 {
	return s.engine.Index().TermFrequencies(id)
}

func (s *Server) StopWords() tokenizer.StopWords {
	return s.engine.StopWords()
}
