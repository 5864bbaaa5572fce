package ranker

import (
	"math"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
)

const (
	// MaxResultDocumentCount caps the length of every result list.
	MaxResultDocumentCount = 5
	// RelevanceEpsilon is the largest relevance difference treated as a tie.
	RelevanceEpsilon = 1e-6
)

type RankParams struct {
	TotalDocs int
}

// DocInfo is what the ranker needs to know about a candidate document.
type DocInfo struct {
	Rating int
	Status document.Status
}

// Rank scores every accepted document of each plus term with the sum of
// tf*idf, drops every document listed in excluded, and
// returns at most limit results in ranking order. getDocInfo must know every
// document that appears in the postings.
func Rank(
	docsPerTerm map[string]index.TermDocs,
	excluded map[int]struct{},
	params RankParams,
	getDocInfo func(docID int) DocInfo,
	accept document.Predicate,
	limit int,
) []document.Document {
	scores := make(map[int]float64)
	for _, docs := range docsPerTerm {
		if len(docs) == 0 {
			continue
		}
		idf := IDF(params.TotalDocs, len(docs))
		for docID, tf := range docs {
			info := getDocInfo(docID)
			if accept(docID, info.Status, info.Rating) {
				scores[docID] += tf * idf
			}
		}
	}
	for docID := range excluded {
		delete(scores, docID)
	}

	result := make([]document.Document, 0, len(scores))
	for docID, score := range scores {
		result = append(result, document.Document{
			ID:        docID,
			Relevance: score,
			Rating:    getDocInfo(docID).Rating,
		})
	}
	Sort(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// IDF is ln(totalDocs/docFreq). It is only defined for indexed terms, so
// docFreq must be positive.
func IDF(totalDocs int, docFreq int) float64 {
	return math.Log(float64(totalDocs) / float64(docFreq))
}

// Sort orders docs by relevance descending. Relevances closer than
// RelevanceEpsilon are equal and fall back to rating descending, then to
// ascending id.
func Sort(docs []document.Document) {
	slices.SortStableFunc(docs, Compare)
}

func Compare(lhs, rhs document.Document) int {
	if math.Abs(lhs.Relevance-rhs.Relevance) >= RelevanceEpsilon {
		if lhs.Relevance > rhs.Relevance {
			return -1
		}
		return 1
	}
	if lhs.Rating != rhs.Rating {
		if lhs.Rating > rhs.Rating {
			return -1
		}
		return 1
	}
	switch {
	case lhs.ID < rhs.ID:
		return -1
	case lhs.ID > rhs.ID:
		return 1
	}
	return 0
}
