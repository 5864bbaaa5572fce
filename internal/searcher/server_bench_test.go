package searcher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
)

var benchWords = []string{
	"distributed", "search", "analytics", "platform", "indexing",
	"query", "processing", "ranking", "caching", "cat", "dog", "collar",
}

func newBenchServer(b *testing.B, numDocs int) *Server {
	b.Helper()
	s, err := NewFromText("and in on the")
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < numDocs; i++ {
		words := make([]string, 0, 8)
		for j := 0; j < 8; j++ {
			words = append(words, benchWords[(i*7+j*3)%len(benchWords)])
		}
		if err := s.AddDocument(i, strings.Join(words, " "), document.StatusActual, []int{i % 10}); err != nil {
			b.Fatal(err)
		}
	}
	return s
}

func BenchmarkFindTopDocuments(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{"single", "search"},
		{"multi", "distributed search ranking"},
		{"with_minus", "search ranking -cat -dog"},
	}
	for _, numDocs := range []int{1000, 10000} {
		s := newBenchServer(b, numDocs)
		for _, q := range queries {
			b.Run(fmt.Sprintf("docs_%d/%s", numDocs, q.name), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := s.FindTopDocuments(q.query); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkMatchDocument(b *testing.B) {
	s := newBenchServer(b, 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := s.MatchDocument("distributed search -cat", i%1000); err != nil {
			b.Fatal(err)
		}
	}
}
