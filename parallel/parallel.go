// Package parallel computes the sum of reciprocals of a slice of float64
// values in parallel, on top of the work-stealing pools of package forkjoin.
//
// Sum recursively halves the input until the subranges are small enough to
// be summed sequentially, forking one half and computing the other half on
// the current worker at each level. ChunkedSum instead partitions the input
// into a fixed number of chunks, sums all of them in parallel, and adds up
// the partial results in chunk order.
//
// In both cases the order in which partial results are added up depends
// only on the length of the input and the configuration, never on the order
// in which tasks happen to execute. The results are therefore deterministic,
// and can be reproduced bit for bit by the corresponding functions in
// package sequential.
package parallel

import (
	"github.com/exascience/recipsum"
	"github.com/exascience/recipsum/chunk"
	"github.com/exascience/recipsum/forkjoin"
	"github.com/exascience/recipsum/sequential"
)

/*
A Reducer holds the configuration for the parallel reductions.

The zero Reducer is valid, and uses forkjoin.Default() and
recipsum.DefaultThreshold.
*/
type Reducer struct {
	// Pool executes the tasks. If nil, forkjoin.Default() is used.
	Pool *forkjoin.Pool

	// Threshold is the range size at or below which Sum stops splitting.
	// If 0, recipsum.DefaultThreshold is used. Negative values are invalid.
	Threshold int

	// OnLeaf, if not nil, is invoked for every task that computes its
	// result sequentially, before it does so.
	OnLeaf recipsum.LeafFunc
}

func (r *Reducer) pool() *forkjoin.Pool {
	if r.Pool == nil {
		return forkjoin.Default()
	}
	return r.Pool
}

func (r *Reducer) threshold() (int, error) {
	switch {
	case r.Threshold > 0:
		return r.Threshold, nil
	case r.Threshold == 0:
		return recipsum.DefaultThreshold, nil
	default:
		return 0, recipsum.InvalidArgument("threshold must not be negative, got %d", r.Threshold)
	}
}

/*
A Task sums the reciprocals of the elements of Input in Range, splitting the
range recursively as long as it is longer than Threshold.

A Task is a value that is bound to its range on construction and does not
compute anything until Compute is called. Its result is returned from
Compute, so no task ever writes to memory shared with other tasks.
*/
type Task struct {
	Input     []float64
	Range     recipsum.Range
	Threshold int
	OnLeaf    recipsum.LeafFunc
}

/*
Compute executes the task on worker w and returns its result.

If the range is at most Threshold elements long, Compute sums it
sequentially. Otherwise, it splits the range at its midpoint, forks a task
for the left half, computes the right half on w, joins the left half, and
returns the sum of both halves. Threshold must be at least 1.
*/
func (t Task) Compute(w *forkjoin.Worker) float64 {
	if t.Range.Len() <= t.Threshold {
		if t.OnLeaf != nil {
			t.OnLeaf(t.Range)
		}
		return sequential.RangeSum(t.Input, t.Range.Low, t.Range.High)
	}
	left, right := t, t
	left.Range, right.Range = t.Range.Split()
	f := w.Fork(left.Compute)
	y := right.Compute(w)
	x := f.Join(w)
	return x + y
}

/*
Sum returns the sum of 1/x for every x in input, computed by a
divide-and-conquer task tree on r's pool.

Sum returns an error wrapping recipsum.ErrInvalidArgument if the length of
input is odd or the threshold is negative, and forkjoin.ErrClosed if the
pool is closed. In these cases, no task is scheduled.

If a task panics, Sum panics with the recovered panic value.
*/
func (r *Reducer) Sum(input []float64) (float64, error) {
	if len(input)%2 != 0 {
		return 0, recipsum.InvalidArgument("input length must be even, got %d", len(input))
	}
	threshold, err := r.threshold()
	if err != nil {
		return 0, err
	}
	root := Task{
		Input:     input,
		Range:     recipsum.Range{Low: 0, High: len(input)},
		Threshold: threshold,
		OnLeaf:    r.OnLeaf,
	}
	return r.pool().Invoke(root.Compute)
}

/*
ChunkedSum partitions input into numTasks chunks as determined by
chunk.Split, sums all chunks sequentially in parallel with each other, and
returns the sum of the partial results, added up in chunk order.

Each chunk is handled by exactly one task, regardless of its size.
ChunkedSum returns only when all tasks have terminated. With numTasks == 1,
the result is identical to sequential.Sum(input).

ChunkedSum returns an error wrapping recipsum.ErrInvalidArgument if
numTasks < 1, and forkjoin.ErrClosed if the pool is closed. In these cases,
no task is scheduled.

If a task panics, ChunkedSum panics with the left-most recovered panic
value.
*/
func (r *Reducer) ChunkedSum(input []float64, numTasks int) (float64, error) {
	ranges, err := chunk.Split(numTasks, len(input))
	if err != nil {
		return 0, err
	}
	leaves := make([]func(*forkjoin.Worker) float64, len(ranges))
	for i, rng := range ranges {
		leaves[i] = func(*forkjoin.Worker) float64 {
			if r.OnLeaf != nil {
				r.OnLeaf(rng)
			}
			return sequential.RangeSum(input, rng.Low, rng.High)
		}
	}
	return r.pool().Invoke(func(w *forkjoin.Worker) float64 {
		var sum float64
		for _, partial := range w.InvokeAll(leaves...) {
			sum += partial
		}
		return sum
	})
}

// Sum calls Sum on the zero Reducer.
func Sum(input []float64) (float64, error) {
	var r Reducer
	return r.Sum(input)
}

// ChunkedSum calls ChunkedSum on the zero Reducer.
func ChunkedSum(input []float64, numTasks int) (float64, error) {
	var r Reducer
	return r.ChunkedSum(input, numTasks)
}
