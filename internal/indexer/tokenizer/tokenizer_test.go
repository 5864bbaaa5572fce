package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func TestSplitIntoWords(t *testing.T) {
	assert.Equal(t, []string{"white", "cat", "fancy", "collar"}, SplitIntoWords("white cat  fancy collar "))
	assert.Empty(t, SplitIntoWords(""))
	assert.Empty(t, SplitIntoWords("   "))
	assert.Equal(t, []string{"tab\tinside"}, SplitIntoWords("tab\tinside"))
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("well-groomed"))
	assert.True(t, IsValidWord("пушистый"))
	assert.True(t, IsValidWord(""))
	assert.False(t, IsValidWord("ca\x12t"))
	assert.False(t, IsValidWord("\x00"))
	assert.False(t, IsValidWord("tab\tinside"))
}

func TestNewStopWords(t *testing.T) {
	sw, err := NewStopWords([]string{"and", "", "in", "and"})
	require.NoError(t, err)
	assert.Equal(t, 2, sw.Len())
	assert.True(t, sw.Contains("and"))
	assert.False(t, sw.Contains(""))
	assert.False(t, sw.Contains("cat"))
}

func TestNewStopWords_RejectsControlCharacters(t *testing.T) {
	_, err := NewStopWords([]string{"and", "i\x1fn"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = ParseStopWords("and in\x02 on")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestStopWords_ZeroValueIsEmpty(t *testing.T) {
	var sw StopWords
	assert.False(t, sw.Contains("and"))
	assert.Equal(t, []string{"cat", "and", "dog"}, sw.SplitNoStop("cat and dog"))
}

func TestSplitNoStop(t *testing.T) {
	sw, err := ParseStopWords("and in on")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "house"}, sw.SplitNoStop("cat and dog in on house"))
	assert.Empty(t, sw.SplitNoStop("and in"))
}
