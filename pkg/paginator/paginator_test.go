package paginator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"even split", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"short last page", []int{1, 2, 3, 4, 5}, 2, [][]int{{1, 2}, {3, 4}, {5}}},
		{"size larger than items", []int{1, 2}, 5, [][]int{{1, 2}}},
		{"empty", nil, 3, nil},
		{"zero size", []int{1, 2}, 0, nil},
		{"negative size", []int{1, 2}, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Paginate(tt.items, tt.size))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), PageCount(len(tt.items), tt.size))
		})
	}
}

func TestPaginate_EarlyStop(t *testing.T) {
	pages := 0
	for range Paginate([]string{"a", "b", "c", "d"}, 1) {
		pages++
		if pages == 2 {
			break
		}
	}
	assert.Equal(t, 2, pages)
}

func TestPaginate_PagesDoNotAlias(t *testing.T) {
	items := []int{1, 2, 3, 4}
	var first []int
	for page := range Paginate(items, 2) {
		first = page
		break
	}
	first = append(first, 99)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
	assert.Equal(t, []int{1, 2, 99}, first)
}
