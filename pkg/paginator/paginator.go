// Package paginator splits a slice into consecutive fixed-size pages.
package paginator

import "iter"

// Paginate yields consecutive pages of items, each a subslice of at most
// size elements. Only the last page may be shorter. A non-positive size
// yields nothing.
func Paginate[T any](items []T, size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if size <= 0 {
			return
		}
		for start := 0; start < len(items); start += size {
			end := min(start+size, len(items))
			if !yield(items[start:end:end]) {
				return
			}
		}
	}
}

func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
