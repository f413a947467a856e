package recipsum

import (
	"errors"
	"fmt"
)

// DefaultThreshold is the range size at or below which the divide-and-conquer
// reduction stops splitting and sums sequentially.
const DefaultThreshold = 20000

// ErrInvalidArgument is returned, possibly wrapped, when a precondition of an
// operation does not hold. It is always reported before any task is
// scheduled.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgument returns an error that wraps ErrInvalidArgument with a
// formatted explanation.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

type (
	// A Range is a half-open interval of indices from Low to High, including
	// Low but excluding High, with 0 <= Low <= High.
	Range struct {
		Low, High int
	}

	// A LeafFunc observes the range of a task that computes its result
	// directly instead of splitting further. It may be invoked concurrently
	// from several goroutines.
	LeafFunc func(r Range)
)

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.High - r.Low
}

// Empty reports whether r contains no indices.
func (r Range) Empty() bool {
	return r.High <= r.Low
}

// Split divides r at its midpoint, Low + (High-Low)/2, into a left and a
// right half. For an odd length, the right half is one element longer.
func (r Range) Split() (left, right Range) {
	mid := r.Low + (r.High-r.Low)/2
	return Range{r.Low, mid}, Range{mid, r.High}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Low, r.High)
}
