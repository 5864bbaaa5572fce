package index

import (
	"maps"
	"slices"
	"sort"
)

// MemoryIndex is the inverted index: for every term, the documents that
// contain it and the term frequency within each one. A reverse map keeps the
// per-document view. Entries are only ever added.
type MemoryIndex struct {
	terms map[string]map[int]float64
	docs  map[int]map[string]float64
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		terms: make(map[string]map[int]float64),
		docs:  make(map[int]map[string]float64),
	}
}

// AddDocument adds 1/len(words) to the frequency of each word for docID.
// The caller validates words and guarantees docID is new. An empty word list
// leaves the index untouched.
func (m *MemoryIndex) AddDocument(docID int, words []string) {
	if len(words) == 0 {
		return
	}
	inv := 1.0 / float64(len(words))
	freqs := make(map[string]float64, len(words))
	for _, word := range words {
		freqs[word] += inv
	}
	for term, tf := range freqs {
		docs, exists := m.terms[term]
		if !exists {
			docs = make(map[int]float64)
			m.terms[term] = docs
		}
		docs[docID] = tf
	}
	m.docs[docID] = freqs
}

// Postings returns the postings of term ordered by document id, or nil when
// the term is not indexed.
func (m *MemoryIndex) Postings(term string) PostingList {
	docs, exists := m.terms[term]
	if !exists {
		return nil
	}
	result := make(PostingList, 0, len(docs))
	for docID, tf := range docs {
		result = append(result, Posting{DocID: docID, TermFreq: tf})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DocID < result[j].DocID
	})
	return result
}

// TermDocs returns the documents of term without copying them, or nil when
// the term is not indexed. The map is shared with the index: callers must
// not modify it or keep it across AddDocument.
func (m *MemoryIndex) TermDocs(term string) TermDocs {
	return m.terms[term]
}

// DocFreq is the number of documents containing term.
func (m *MemoryIndex) DocFreq(term string) int {
	return len(m.terms[term])
}

func (m *MemoryIndex) HasTerm(term string) bool {
	_, ok := m.terms[term]
	return ok
}

// Contains reports whether term is indexed for docID.
func (m *MemoryIndex) Contains(term string, docID int) bool {
	_, ok := m.terms[term][docID]
	return ok
}

// TermFrequencies returns a copy of the term frequencies of one document. It
// is empty for unknown documents and for documents without indexable words.
func (m *MemoryIndex) TermFrequencies(docID int) map[string]float64 {
	return maps.Clone(m.docs[docID])
}

func (m *MemoryIndex) TermCount() int {
	return len(m.terms)
}

// Snapshot returns every term entry sorted by term, postings sorted by id.
func (m *MemoryIndex) Snapshot() []TermEntry {
	terms := slices.Sorted(maps.Keys(m.terms))
	entries := make([]TermEntry, 0, len(terms))
	for _, term := range terms {
		entries = append(entries, TermEntry{
			Term:     term,
			Postings: m.Postings(term),
		})
	}
	return entries
}
