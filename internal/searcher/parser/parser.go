// Package parser turns a raw query string into the sets of plus and minus
// terms used for ranking.
package parser

import (
	"maps"
	"slices"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// MinusPrefix marks a term whose documents are excluded from the results.
const MinusPrefix = '-'

// Query is a parsed query. A term may sit in both sets when the raw query
// carries it with and without the marker; exclusion then wins.
type Query struct {
	PlusTerms  map[string]struct{}
	MinusTerms map[string]struct{}
	RawQuery   string
}

// Plus returns the plus terms in sorted order.
func (q *Query) Plus() []string {
	return slices.Sorted(maps.Keys(q.PlusTerms))
}

// Minus returns the minus terms in sorted order.
func (q *Query) Minus() []string {
	return slices.Sorted(maps.Keys(q.MinusTerms))
}

func (q *Query) Empty() bool {
	return len(q.PlusTerms) == 0 && len(q.MinusTerms) == 0
}

type queryWord struct {
	data    string
	isMinus bool
	isStop  bool
}

// Parse splits raw into words and sorts them into plus and minus terms,
// dropping stop words. It fails with ErrInvalidArgument on control
// characters, a lone "-", or a doubled "--" prefix.
func Parse(raw string, stopWords tokenizer.StopWords) (*Query, error) {
	q := &Query{
		PlusTerms:  make(map[string]struct{}),
		MinusTerms: make(map[string]struct{}),
		RawQuery:   raw,
	}
	for _, word := range tokenizer.SplitIntoWords(raw) {
		qw, err := parseQueryWord(word, stopWords)
		if err != nil {
			return nil, err
		}
		if qw.isStop {
			continue
		}
		if qw.isMinus {
			q.MinusTerms[qw.data] = struct{}{}
		} else {
			q.PlusTerms[qw.data] = struct{}{}
		}
	}
	return q, nil
}

func parseQueryWord(word string, stopWords tokenizer.StopWords) (queryWord, error) {
	if !tokenizer.IsValidWord(word) {
		return queryWord{}, apperrors.InvalidArgumentf("query word %q contains control characters", word)
	}
	isMinus := false
	if word[0] == MinusPrefix {
		isMinus = true
		word = word[1:]
		if word == "" {
			return queryWord{}, apperrors.InvalidArgumentf("query has a minus sign without a word")
		}
		if word[0] == MinusPrefix {
			return queryWord{}, apperrors.InvalidArgumentf("query word %q has more than one minus sign", "-"+word)
		}
	}
	return queryWord{
		data:    word,
		isMinus: isMinus,
		isStop:  stopWords.Contains(word),
	}, nil
}

// Normalize renders a query key that is equal for queries with the same
// words regardless of order or repetition.
func Normalize(raw string) string {
	words := tokenizer.SplitIntoWords(raw)
	slices.Sort(words)
	return strings.Join(slices.Compact(words), " ")
}
