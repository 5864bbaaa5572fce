package searcher

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func newCatServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewFromText("and")
	require.NoError(t, err)
	require.NoError(t, s.AddDocument(0, "white cat fancy collar", document.StatusActual, []int{8, -3}))
	require.NoError(t, s.AddDocument(1, "fluffy cat fluffy tail", document.StatusActual, []int{7, 2, 7}))
	return s
}

func TestFindTopDocuments_RanksByTFIDF(t *testing.T) {
	s := newCatServer(t)

	docs, err := s.FindTopDocuments("fluffy well-groomed cat")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, 1, docs[0].ID)
	assert.InDelta(t, 0.5*math.Log(2), docs[0].Relevance, 1e-9)
	assert.Equal(t, 5, docs[0].Rating)

	assert.Equal(t, 0, docs[1].ID)
	assert.InDelta(t, 0.0, docs[1].Relevance, 1e-9)
	assert.Equal(t, 2, docs[1].Rating)
}

func TestFindTopDocuments_InvalidQueries(t *testing.T) {
	s := newCatServer(t)

	for _, q := range []string{"--cat", "-", "cat -", "ca\x12t"} {
		_, err := s.FindTopDocuments(q)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument, "query %q", q)
	}
}

func TestFindTopDocuments_MinusTermVetoes(t *testing.T) {
	s := newCatServer(t)

	docs, err := s.FindTopDocuments("fluffy cat -collar")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].ID)

	docs, err = s.FindTopDocuments("cat -cat")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFindTopDocuments_StopWordsIgnored(t *testing.T) {
	s, err := NewFromText("in the")
	require.NoError(t, err)
	require.NoError(t, s.AddDocument(42, "cat in the city", document.StatusActual, []int{1, 2, 3}))

	docs, err := s.FindTopDocuments("in")
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = s.FindTopDocuments("cat -the")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 42, docs[0].ID)
}

func TestFindTopDocuments_FilterByStatusAndPredicate(t *testing.T) {
	s := newCatServer(t)
	require.NoError(t, s.AddDocument(2, "groomed dog expressive eyes", document.StatusActual, []int{5, -12, 2, 1}))
	require.NoError(t, s.AddDocument(3, "groomed starling evgeny", document.StatusBanned, []int{9}))

	banned, err := s.FindTopDocumentsByStatus("groomed", document.StatusBanned)
	require.NoError(t, err)
	require.Len(t, banned, 1)
	assert.Equal(t, 3, banned[0].ID)

	even, err := s.FindTopDocumentsFunc("cat groomed", func(id int, _ document.Status, _ int) bool {
		return id%2 == 0
	})
	require.NoError(t, err)
	for _, d := range even {
		assert.Zero(t, d.ID%2)
	}
	assert.Len(t, even, 2)
}

func TestFindTopDocuments_AtMostFiveSorted(t *testing.T) {
	s, err := NewFromText("")
	require.NoError(t, err)
	texts := []string{
		"cat", "cat dog", "cat dog bird", "cat cat dog", "dog bird",
		"cat bird bird", "cat fish", "fish", "cat", "cat cat cat dog",
	}
	for i, text := range texts {
		require.NoError(t, s.AddDocument(i, text, document.StatusActual, []int{i}))
	}

	docs, err := s.FindTopDocuments("cat bird")
	require.NoError(t, err)
	require.Len(t, docs, ranker.MaxResultDocumentCount)
	for i := 1; i < len(docs); i++ {
		prev, cur := docs[i-1], docs[i]
		if math.Abs(prev.Relevance-cur.Relevance) < ranker.RelevanceEpsilon {
			assert.GreaterOrEqual(t, prev.Rating, cur.Rating)
		} else {
			assert.Greater(t, prev.Relevance, cur.Relevance)
		}
	}
}

func TestMatchDocument(t *testing.T) {
	s := newCatServer(t)

	words, status, err := s.MatchDocument("cat -collar", 0)
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.Equal(t, document.StatusActual, status)

	words, _, err = s.MatchDocument("white fancy cat dog", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "fancy", "white"}, words)

	_, _, err = s.MatchDocument("cat", 7)
	assert.ErrorIs(t, err, apperrors.ErrOutOfRange)

	_, _, err = s.MatchDocument("--cat", 7)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestAddDocument_FailuresLeaveStateUnchanged(t *testing.T) {
	s := newCatServer(t)
	before := s.engine.Index().Snapshot()

	err := s.AddDocument(1, "brand new words", document.StatusActual, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.True(t, errors.Is(err, apperrors.ErrDocumentExists))

	err = s.AddDocument(-1, "brand new words", document.StatusActual, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	err = s.AddDocument(5, "broken wo\x01rd", document.StatusActual, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	assert.Equal(t, 2, s.DocumentCount())
	assert.Equal(t, before, s.engine.Index().Snapshot())
}

func TestDocumentID(t *testing.T) {
	s := newCatServer(t)
	require.NoError(t, s.AddDocument(10, "parrot", document.StatusRemoved, nil))

	id, err := s.DocumentID(2)
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	_, err = s.DocumentID(3)
	assert.ErrorIs(t, err, apperrors.ErrOutOfRange)
	_, err = s.DocumentID(-1)
	assert.ErrorIs(t, err, apperrors.ErrOutOfRange)
}

func TestTermFrequencies_SumToOne(t *testing.T) {
	s := newCatServer(t)
	for _, id := range []int{0, 1} {
		sum := 0.0
		for _, tf := range s.TermFrequencies(id) {
			sum += tf
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
	assert.Empty(t, s.TermFrequencies(99))
}

func TestNewFromText_InvalidStopWord(t *testing.T) {
	_, err := NewFromText("and i\x02n")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = NewFromWords([]string{"ok", "ba\x1fd"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestLocked_ConcurrentQueries(t *testing.T) {
	l := NewLocked(newCatServer(t))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = l.AddDocument(100+i, "cat number words", document.StatusActual, []int{i})
			_, err := l.FindTopDocuments("cat")
			assert.NoError(t, err)
			_, _, err = l.MatchDocument("cat", 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, l.DocumentCount())
}
