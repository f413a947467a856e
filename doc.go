// Package recipsum computes the sum of reciprocals of a slice of float64
// values, both sequentially and in parallel with fork-join task
// decomposition. The parallel variants split a reduction into independent
// subranges, schedule them on a work-stealing pool, and recombine the partial
// results in an order that is fixed by the split, so results are
// deterministic for a given input even though execution order is not.
//
// Recipsum provides the following subpackages:
//
// recipsum/chunk computes contiguous, non-overlapping index ranges for a
// fixed number of partitions.
//
// recipsum/sequential provides the sequential baseline, and sequential
// renditions of the parallel decompositions for testing and debugging.
//
// recipsum/forkjoin provides an explicitly constructed work-stealing pool
// with fork, join, and invoke-all operations. A joining worker executes other
// pending tasks while it waits, instead of idling.
//
// recipsum/parallel provides the recursive divide-and-conquer reduction and
// the flat chunked reduction on top of recipsum/forkjoin.
//
// The design follows the fork-join model of Cilk and Java's
// java.util.concurrent.ForkJoinPool. See
// http://supertech.csail.mit.edu/papers/steal.pdf for some theoretical
// background.
package recipsum
