package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// ComputeParallelism returns n if n is positive, or runtime.GOMAXPROCS(0) if
// n is 0.
func ComputeParallelism(n int) int {
	switch {
	case n > 0:
		return n
	case n == 0:
		return runtime.GOMAXPROCS(0)
	default:
		panic(fmt.Sprintf("invalid parallelism: %v", n))
	}
}

// ComputeNofTasks returns n if n is positive, or the given parallelism if n
// is 0. The result never exceeds the size of the range unless the range is
// empty, in which case it is 1.
func ComputeNofTasks(size, n, parallelism int) (tasks int) {
	switch {
	case n > 0:
		tasks = n
	case n == 0:
		tasks = parallelism
	default:
		panic(fmt.Sprintf("invalid number of tasks: %v", n))
	}
	if size == 0 {
		return 1
	}
	if tasks > size {
		tasks = size
	}
	return
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
