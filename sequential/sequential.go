// Package sequential provides the sequential baseline for the sum of
// reciprocals, as well as sequential implementations of the decompositions
// used by the parallel package. The latter add up partial results in exactly
// the same order as their parallel counterparts, so their results can be
// compared bit for bit. This is useful for testing and debugging.
//
// Division by zero is not an error: a zero element contributes +Inf or -Inf,
// and NaN propagates, following IEEE 754 semantics.
package sequential

import (
	"github.com/exascience/recipsum"
	"github.com/exascience/recipsum/chunk"
)

// Sum returns the sum of 1/x for every x in input, accumulated in index
// order. Sum returns 0 for an empty input.
func Sum(input []float64) float64 {
	var sum float64
	for _, x := range input {
		sum += 1 / x
	}
	return sum
}

// RangeSum returns the sum of 1/input[i] for i in the half-open interval
// from low to high, accumulated in index order.
//
// RangeSum panics if the range is not within the bounds of input.
func RangeSum(input []float64, low, high int) float64 {
	return Sum(input[low:high])
}

// ChunkedSum partitions input into nChunks chunks, sums each chunk, and adds
// up the partial results in chunk order.
//
// ChunkedSum returns an error wrapping recipsum.ErrInvalidArgument if
// nChunks < 1.
func ChunkedSum(input []float64, nChunks int) (float64, error) {
	ranges, err := chunk.Split(nChunks, len(input))
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, r := range ranges {
		sum += RangeSum(input, r.Low, r.High)
	}
	return sum, nil
}

// TreeSum recursively halves the range of input until it is at most
// threshold elements long, and adds up the partial results of both halves
// at each level.
//
// TreeSum returns an error wrapping recipsum.ErrInvalidArgument if
// threshold < 1.
func TreeSum(input []float64, threshold int) (float64, error) {
	if threshold < 1 {
		return 0, recipsum.InvalidArgument("threshold must be at least 1, got %d", threshold)
	}
	var recur func(recipsum.Range) float64
	recur = func(r recipsum.Range) float64 {
		if r.Len() <= threshold {
			return RangeSum(input, r.Low, r.High)
		}
		left, right := r.Split()
		return recur(left) + recur(right)
	}
	return recur(recipsum.Range{Low: 0, High: len(input)}), nil
}
