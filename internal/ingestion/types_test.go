package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpus_YAML(t *testing.T) {
	path := writeFile(t, "corpus.yaml", `
stopWords: "and in on"
documents:
  - id: 0
    text: white cat and fancy collar
    ratings: [8, -3]
  - id: 1
    text: fluffy cat fluffy tail
    status: banned
    ratings: [7, 2, 7]
`)
	corpus, err := LoadCorpus(path)
	require.NoError(t, err)

	assert.Equal(t, "and in on", corpus.StopWords)
	require.Len(t, corpus.Documents, 2)
	require.NotNil(t, corpus.Documents[0].ID)
	assert.Equal(t, 0, *corpus.Documents[0].ID)
	assert.Equal(t, document.StatusActual, corpus.Documents[0].Status)
	assert.Equal(t, []int{8, -3}, corpus.Documents[0].Ratings)
	assert.Equal(t, document.StatusBanned, corpus.Documents[1].Status)
}

func TestLoadCorpus_JSON(t *testing.T) {
	path := writeFile(t, "corpus.json", `{
  "stop_words": "and",
  "documents": [{"id": 3, "text": "groomed dog", "status": "IRRELEVANT", "ratings": []}]
}`)
	corpus, err := LoadCorpus(path)
	require.NoError(t, err)

	require.Len(t, corpus.Documents, 1)
	assert.Equal(t, 3, *corpus.Documents[0].ID)
	assert.Equal(t, document.StatusIrrelevant, corpus.Documents[0].Status)
}

func TestLoadCorpus_Errors(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadCorpus(writeFile(t, "bad.yaml", "documents:\n  - id: 1\n    status: archived\n"))
	assert.Error(t, err)

	_, err = LoadCorpus(writeFile(t, "unknown.yaml", "documents:\n  - id: 1\n    title: nope\n"))
	assert.Error(t, err)

	_, err = LoadCorpus(writeFile(t, "bad.json", `{"documents": [`))
	assert.Error(t, err)
}
