package index

import (
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// DocumentData is the metadata kept for every ingested document.
type DocumentData struct {
	Rating int
	Status document.Status
}

// DocumentStore owns document metadata and the ids in insertion order.
type DocumentStore struct {
	docs map[int]DocumentData
	ids  []int
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[int]DocumentData),
	}
}

// Add records a new document. The caller checks that id is unused.
func (s *DocumentStore) Add(id int, data DocumentData) {
	s.docs[id] = data
	s.ids = append(s.ids, id)
}

func (s *DocumentStore) Get(id int) (DocumentData, bool) {
	data, ok := s.docs[id]
	return data, ok
}

func (s *DocumentStore) Has(id int) bool {
	_, ok := s.docs[id]
	return ok
}

func (s *DocumentStore) Count() int {
	return len(s.ids)
}

// IDAt returns the id ingested at position index.
func (s *DocumentStore) IDAt(index int) (int, error) {
	if index < 0 || index >= len(s.ids) {
		return 0, apperrors.OutOfRangef("document index %d not in [0, %d)", index, len(s.ids))
	}
	return s.ids[index], nil
}

// IDs returns a copy of the ids in insertion order.
func (s *DocumentStore) IDs() []int {
	return slices.Clone(s.ids)
}
