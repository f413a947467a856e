package sequential_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/exascience/recipsum"
	"github.com/exascience/recipsum/sequential"
)

func ExampleSum() {
	fmt.Println(sequential.Sum([]float64{1, 2, 4}))

	// Output:
	// 1.75
}

func TestSumEdgeCases(t *testing.T) {
	if s := sequential.Sum(nil); s != 0 {
		t.Errorf("Sum(nil) = %v; want 0", s)
	}
	if s := sequential.Sum([]float64{}); s != 0 {
		t.Errorf("Sum([]) = %v; want 0", s)
	}
	if s := sequential.Sum([]float64{1, 0}); !math.IsInf(s, 1) {
		t.Errorf("Sum([1 0]) = %v; want +Inf", s)
	}
	if s := sequential.Sum([]float64{1, math.Copysign(0, -1)}); !math.IsInf(s, -1) {
		t.Errorf("Sum([1 -0]) = %v; want -Inf", s)
	}
	if s := sequential.Sum([]float64{1, math.NaN(), 2}); !math.IsNaN(s) {
		t.Errorf("Sum([1 NaN 2]) = %v; want NaN", s)
	}
}

func TestRangeSum(t *testing.T) {
	input := []float64{1, 2, 4, 8}
	if s := sequential.RangeSum(input, 1, 3); s != 0.75 {
		t.Errorf("RangeSum(1, 3) = %v; want 0.75", s)
	}
	if s := sequential.RangeSum(input, 2, 2); s != 0 {
		t.Errorf("RangeSum(2, 2) = %v; want 0", s)
	}
}

func TestChunkedSum(t *testing.T) {
	input := []float64{1, 2, 4}
	for _, n := range []int{1, 2, 3, 7} {
		s, err := sequential.ChunkedSum(input, n)
		if err != nil {
			t.Fatal(err)
		}
		if s != 1.75 {
			t.Errorf("ChunkedSum(%d) = %v; want 1.75", n, s)
		}
	}
	if _, err := sequential.ChunkedSum(input, 0); !errors.Is(err, recipsum.ErrInvalidArgument) {
		t.Errorf("ChunkedSum(0) error = %v; want ErrInvalidArgument", err)
	}
}

func TestTreeSum(t *testing.T) {
	input := []float64{1, 2, 4, 8, 16}
	want := (1.0 + 0.5) + (0.25 + (0.125 + 0.0625))
	s, err := sequential.TreeSum(input, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s != want {
		t.Errorf("TreeSum(threshold 1) = %v; want %v", s, want)
	}
	s, err = sequential.TreeSum(input, len(input))
	if err != nil {
		t.Fatal(err)
	}
	if s != sequential.Sum(input) {
		t.Errorf("TreeSum(threshold len) = %v; want %v", s, sequential.Sum(input))
	}
	if _, err := sequential.TreeSum(input, 0); !errors.Is(err, recipsum.ErrInvalidArgument) {
		t.Errorf("TreeSum(threshold 0) error = %v; want ErrInvalidArgument", err)
	}
}
