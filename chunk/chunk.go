/*
Package chunk computes contiguous, non-overlapping index ranges that
partition n elements into a fixed number of chunks as evenly as possible.

All chunks except possibly the trailing ones have the same size,
ceiling(nElements / nChunks). When there are more chunks than elements,
the trailing chunks are empty and start and end at nElements.
*/
package chunk

import (
	"github.com/exascience/recipsum"
)

func check(nChunks, nElements int) error {
	if nChunks < 1 {
		return recipsum.InvalidArgument("number of chunks must be at least 1, got %d", nChunks)
	}
	if nElements < 0 {
		return recipsum.InvalidArgument("number of elements must not be negative, got %d", nElements)
	}
	return nil
}

// Size returns the size of each chunk when nElements are partitioned into
// nChunks chunks, which is ceiling(nElements / nChunks).
func Size(nChunks, nElements int) (int, error) {
	if err := check(nChunks, nElements); err != nil {
		return 0, err
	}
	return size(nChunks, nElements), nil
}

func size(nChunks, nElements int) int {
	if nElements == 0 {
		return 0
	}
	return (nElements-1)/nChunks + 1
}

// offset returns min(c*sz, nElements) without overflowing c*sz.
func offset(c, sz, nElements int) int {
	if sz == 0 || c >= (nElements-1)/sz+1 {
		return nElements
	}
	return c * sz
}

// Start returns the inclusive index at which chunk c starts. Chunks that lie
// entirely beyond the last element start at nElements.
func Start(c, nChunks, nElements int) (int, error) {
	if err := check(nChunks, nElements); err != nil {
		return 0, err
	}
	if c < 0 || c >= nChunks {
		return 0, recipsum.InvalidArgument("chunk %d out of range [0:%d)", c, nChunks)
	}
	return offset(c, size(nChunks, nElements), nElements), nil
}

// End returns the exclusive index at which chunk c ends.
func End(c, nChunks, nElements int) (int, error) {
	if err := check(nChunks, nElements); err != nil {
		return 0, err
	}
	if c < 0 || c >= nChunks {
		return 0, recipsum.InvalidArgument("chunk %d out of range [0:%d)", c, nChunks)
	}
	return offset(c+1, size(nChunks, nElements), nElements), nil
}

// Split returns the nChunks ranges that partition [0, nElements), in
// increasing order. Adjacent ranges share their boundary, the first range
// starts at 0, and the last range ends at nElements.
func Split(nChunks, nElements int) ([]recipsum.Range, error) {
	if err := check(nChunks, nElements); err != nil {
		return nil, err
	}
	sz := size(nChunks, nElements)
	ranges := make([]recipsum.Range, nChunks)
	for c := range ranges {
		ranges[c] = recipsum.Range{
			Low:  offset(c, sz, nElements),
			High: offset(c+1, sz, nElements),
		}
	}
	return ranges, nil
}
