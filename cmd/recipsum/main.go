// Command recipsum computes the sum of reciprocals of generated input with
// the sequential, divide-and-conquer, and chunked reductions, and compares
// their results and running times.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
