package searcher

import (
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
)

// Locked serializes writers and lets queries run in parallel.
type Locked struct {
	mu     sync.RWMutex
	server *Server
}

func NewLocked(server *Server) *Locked {
	return &Locked{server: server}
}

func (l *Locked) AddDocument(id int, text string, status document.Status, ratings []int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.server.AddDocument(id, text, status, ratings)
}

func (l *Locked) FindTopDocumentsFunc(raw string, accept document.Predicate) ([]document.Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.server.FindTopDocumentsFunc(raw, accept)
}

func (l *Locked) FindTopDocumentsByStatus(raw string, status document.Status) ([]document.Document, error) {
	return l.FindTopDocumentsFunc(raw, document.ByStatus(status))
}

func (l *Locked) FindTopDocuments(raw string) ([]document.Document, error) {
	return l.FindTopDocumentsByStatus(raw, document.StatusActual)
}

func (l *Locked) MatchDocument(raw string, id int) ([]string, document.Status, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.server.MatchDocument(raw, id)
}

func (l *Locked) DocumentCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.server.DocumentCount()
}

func (l *Locked) DocumentID(index int) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.server.DocumentID(index)
}

func (l *Locked) TermFrequencies(id int) map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.server.TermFrequencies(id)
}
