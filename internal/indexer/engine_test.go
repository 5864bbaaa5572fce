package indexer

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

func newTestEngine(t *testing.T, stop string, opts ...Option) *Engine {
	t.Helper()
	sw, err := tokenizer.ParseStopWords(stop)
	require.NoError(t, err)
	return NewEngine(sw, opts...)
}

func TestEngine_AddDocument_IncrementsCount(t *testing.T) {
	e := newTestEngine(t, "and in on")
	for i := 0; i < 5; i++ {
		require.NoError(t, e.AddDocument(i*10, "cat in the city", document.StatusActual, []int{1}))
		assert.Equal(t, i+1, e.DocumentCount())
	}

	id, err := e.DocumentIDAt(3)
	require.NoError(t, err)
	assert.Equal(t, 30, id)
}

func TestEngine_AddDocument_StopWordsNeverIndexed(t *testing.T) {
	e := newTestEngine(t, "in the")
	require.NoError(t, e.AddDocument(42, "cat in the city", document.StatusActual, []int{1, 2, 3}))

	assert.False(t, e.Index().HasTerm("in"))
	assert.False(t, e.Index().HasTerm("the"))
	assert.InDelta(t, 0.5, e.Index().TermFrequencies(42)["cat"], 1e-9)
}

func TestEngine_AddDocument_TermFrequenciesSumToOne(t *testing.T) {
	e := newTestEngine(t, "and")
	texts := []string{
		"white cat fancy collar",
		"fluffy cat fluffy tail",
		"groomed dog expressive eyes and and",
		"a a a b",
	}
	for i, text := range texts {
		require.NoError(t, e.AddDocument(i, text, document.StatusActual, nil))
	}
	for i := range texts {
		var sum float64
		for _, tf := range e.Index().TermFrequencies(i) {
			sum += tf
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "document %d", i)
	}
}

func TestEngine_AddDocument_RejectsWithoutMutation(t *testing.T) {
	e := newTestEngine(t, "")
	require.NoError(t, e.AddDocument(1, "fluffy cat", document.StatusActual, []int{5}))
	before := e.Index().Snapshot()

	tests := []struct {
		name string
		id   int
		text string
	}{
		{"negative id", -1, "fresh words"},
		{"duplicate id", 1, "fresh words"},
		{"control character", 2, "fresh wo\x12rds"},
		{"tab inside word", 3, "fresh\twords"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.AddDocument(tt.id, tt.text, document.StatusActual, []int{1})
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			assert.Equal(t, 1, e.DocumentCount())
			assert.Equal(t, before, e.Index().Snapshot())
		})
	}
}

func TestEngine_AddDocument_DuplicateIsAlsoDocumentExists(t *testing.T) {
	e := newTestEngine(t, "")
	require.NoError(t, e.AddDocument(1, "cat", document.StatusActual, nil))

	err := e.AddDocument(1, "dog", document.StatusBanned, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, err, apperrors.ErrDocumentExists)

	data, ok := e.Document(1)
	require.True(t, ok)
	assert.Equal(t, document.StatusActual, data.Status)
}

func TestEngine_AddDocument_OnlyStopWordsIsAccepted(t *testing.T) {
	e := newTestEngine(t, "and in")
	require.NoError(t, e.AddDocument(9, "and in and", document.StatusActual, []int{4}))
	require.NoError(t, e.AddDocument(10, "", document.StatusActual, nil))

	assert.Equal(t, 2, e.DocumentCount())
	assert.Equal(t, 0, e.Index().TermCount())
	data, ok := e.Document(9)
	require.True(t, ok)
	assert.Equal(t, 4, data.Rating)
}

func TestEngine_DocumentIDAt_OutOfRange(t *testing.T) {
	e := newTestEngine(t, "")
	_, err := e.DocumentIDAt(0)
	assert.ErrorIs(t, err, apperrors.ErrOutOfRange)
}

func TestComputeAverageRating(t *testing.T) {
	assert.Equal(t, 0, ComputeAverageRating(nil))
	assert.Equal(t, 2, ComputeAverageRating([]int{8, -3}))
	assert.Equal(t, 5, ComputeAverageRating([]int{7, 2, 7}))
	assert.Equal(t, -1, ComputeAverageRating([]int{-7, 2, 2}))
	assert.Equal(t, -2, ComputeAverageRating([]int{-2}))
}

func TestEngine_RecordsMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	e := newTestEngine(t, "", WithMetrics(m))

	require.NoError(t, e.AddDocument(0, "cat dog", document.StatusActual, nil))
	require.Error(t, e.AddDocument(0, "cat dog", document.StatusActual, nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocsIndexedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocsRejectedTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.IndexedTerms))
}
