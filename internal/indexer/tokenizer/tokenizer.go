// Package tokenizer splits document and query text into words, validates
// them, and holds the immutable stop-word set configured at construction.
//
// Words are case-sensitive and never normalised or stemmed. The only
// separator is the ASCII space; every other byte below 0x20 makes a word
// invalid.
package tokenizer

import (
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

const separator = ' '

// SplitIntoWords returns the space-separated words of text, skipping empty
// runs between consecutive separators.
func SplitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == separator
	})
}

// IsValidWord reports whether word is free of control characters.
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < separator {
			return false
		}
	}
	return true
}

// StopWords is a read-only set of words ignored during indexing and query
// parsing. The zero value is an empty set.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a stop-word set. Empty strings are dropped; a word with
// control characters fails with ErrInvalidArgument.
func NewStopWords(words []string) (StopWords, error) {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		if !IsValidWord(word) {
			return StopWords{}, apperrors.InvalidArgumentf("stop word %q contains control characters", word)
		}
		set[word] = struct{}{}
	}
	return StopWords{words: set}, nil
}

// ParseStopWords builds a stop-word set from space-separated text.
func ParseStopWords(text string) (StopWords, error) {
	return NewStopWords(SplitIntoWords(text))
}

func (s StopWords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s StopWords) Len() int {
	return len(s.words)
}

// SplitNoStop splits text and drops stop words.
func (s StopWords) SplitNoStop(text string) []string {
	words := SplitIntoWords(text)
	kept := words[:0]
	for _, word := range words {
		if !s.Contains(word) {
			kept = append(kept, word)
		}
	}
	return kept
}
