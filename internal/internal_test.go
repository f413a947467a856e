package internal

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestComputeParallelism(t *testing.T) {
	if n := ComputeParallelism(3); n != 3 {
		t.Errorf("ComputeParallelism(3) = %d; want 3", n)
	}
	if n := ComputeParallelism(0); n != runtime.GOMAXPROCS(0) {
		t.Errorf("ComputeParallelism(0) = %d; want %d", n, runtime.GOMAXPROCS(0))
	}
	defer func() {
		if recover() == nil {
			t.Error("ComputeParallelism(-1) did not panic")
		}
	}()
	ComputeParallelism(-1)
}

func TestComputeNofTasks(t *testing.T) {
	for _, tc := range []struct {
		size, n, parallelism, want int
	}{
		{100, 4, 8, 4},
		{100, 0, 8, 8},
		{3, 0, 8, 3},
		{3, 5, 8, 3},
		{0, 5, 8, 1},
	} {
		if got := ComputeNofTasks(tc.size, tc.n, tc.parallelism); got != tc.want {
			t.Errorf("ComputeNofTasks(%d, %d, %d) = %d; want %d",
				tc.size, tc.n, tc.parallelism, got, tc.want)
		}
	}
}

func TestWrapPanic(t *testing.T) {
	if WrapPanic(nil) != nil {
		t.Error("WrapPanic(nil) is not nil")
	}

	s, ok := WrapPanic("boom").(string)
	if !ok || !strings.HasPrefix(s, "boom\n") || !strings.Contains(s, "rethrown at") {
		t.Errorf("unexpected wrapped string panic: %v", s)
	}

	err, ok := WrapPanic(errors.New("bad")).(error)
	if !ok || !strings.HasPrefix(err.Error(), "bad\n") {
		t.Errorf("unexpected wrapped error panic: %v", err)
	}

	var rerr runtime.Error
	func() {
		defer func() {
			rerr, _ = WrapPanic(recover()).(runtime.Error)
		}()
		var a []int
		_ = a[1]
	}()
	if rerr == nil {
		t.Error("wrapped runtime error lost its runtime.Error type")
	}
}
