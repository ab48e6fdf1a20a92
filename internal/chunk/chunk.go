// Package chunk splits ordered text items into size-bounded groups.
package chunk

import (
	"errors"
	"fmt"
)

// DefaultSize is the number of items sent in one translate call.
const DefaultSize = 100

var ErrInvalidSize = errors.New("chunk size must be at least 1")

// Chunk is a contiguous run of input items. Index is its 0-based position
// among the chunks of one Split call.
type Chunk struct {
	Index int
	Items []string
}

// Split partitions items into chunks of at most size items each, keeping the
// input order. An empty input yields no chunks.
func Split(items []string, size int) ([]Chunk, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]Chunk, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, Chunk{Index: len(out), Items: items[start:end:end]})
	}
	return out, nil
}

// Flatten concatenates per-chunk values in slot order.
func Flatten[T any](slots [][]T) []T {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	out := make([]T, 0, n)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}
