// Package validator checks ingestion requests before they reach the index
// and reports per-field error details.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/ingestion"
)

const (
	maxTextLength  = 1048576
	maxRatingCount = 10000
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}

// ValidateIngestRequest checks the shape of req. Word-level checks such as
// control characters and duplicate ids are left to the index, which owns
// that state.
func ValidateIngestRequest(req *ingestion.IngestRequest) error {
	errs := make(map[string]string)

	switch {
	case req.ID == nil:
		errs["id"] = "id is required"
	case *req.ID < 0:
		errs["id"] = "id must not be negative"
	}
	if len(req.Text) > maxTextLength {
		errs["text"] = fmt.Sprintf("text must be at most %d bytes", maxTextLength)
	}
	if !req.Status.Valid() {
		errs["status"] = fmt.Sprintf("unknown status %d", int(req.Status))
	}
	if len(req.Ratings) > maxRatingCount {
		errs["ratings"] = fmt.Sprintf("at most %d ratings are allowed", maxRatingCount)
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
