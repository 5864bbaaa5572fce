package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
)

func intPtr(v int) *int { return &v }

func TestValidateIngestRequest_Valid(t *testing.T) {
	err := ValidateIngestRequest(&ingestion.IngestRequest{
		ID:      intPtr(0),
		Text:    "white cat",
		Ratings: []int{1, 2},
	})
	assert.NoError(t, err)

	// Empty text is a valid, unfindable document.
	assert.NoError(t, ValidateIngestRequest(&ingestion.IngestRequest{ID: intPtr(7)}))
}

func TestValidateIngestRequest_FieldErrors(t *testing.T) {
	err := ValidateIngestRequest(&ingestion.IngestRequest{
		Text:   strings.Repeat("a", maxTextLength+1),
		Status: document.Status(9),
	})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "id")
	assert.Contains(t, vErr.Fields, "text")
	assert.Contains(t, vErr.Fields, "status")
	assert.NotContains(t, vErr.Fields, "ratings")
	assert.True(t, strings.HasPrefix(err.Error(), "id: "))

	err = ValidateIngestRequest(&ingestion.IngestRequest{ID: intPtr(-4)})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "id must not be negative", vErr.Fields["id"])
}
