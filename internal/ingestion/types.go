// Package ingestion defines the document records accepted over HTTP and in
// corpus files, and loads corpus files from disk.
package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
)

// IngestRequest is one document as accepted by the ingestion endpoint and
// as listed in corpus files.
type IngestRequest struct {
	ID      *int            `json:"id" yaml:"id"`
	Text    string          `json:"text" yaml:"text"`
	Status  document.Status `json:"status" yaml:"status"`
	Ratings []int           `json:"ratings" yaml:"ratings"`
}

// IngestResponse is returned to the caller after a document is accepted.
type IngestResponse struct {
	DocumentID    int    `json:"document_id"`
	Status        string `json:"status"`
	Rating        int    `json:"rating"`
	DocumentCount int    `json:"document_count"`
}

// Corpus is the on-disk form of an initial document set.
type Corpus struct {
	StopWords string          `json:"stop_words" yaml:"stopWords"`
	Documents []IngestRequest `json:"documents" yaml:"documents"`
}

// LoadCorpus reads a corpus file. Files ending in .json are decoded as JSON,
// everything else as YAML. Unknown fields are rejected.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	var corpus Corpus
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&corpus)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&corpus)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	return &corpus, nil
}
