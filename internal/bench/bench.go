// Package bench provides input generation, timing, and verification for the
// recipsum bench and sum commands.
package bench

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Generate returns size values drawn uniformly from [lo, hi), reproducibly
// for a given seed.
func Generate(size int, seed uint64, lo, hi float64) []float64 {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	input := make([]float64, size)
	for i := range input {
		input[i] = lo + (hi-lo)*rnd.Float64()
	}
	return input
}

// Agree reports whether got is within the relative tolerance tol of want.
// Two NaNs agree, and infinities agree only with themselves.
func Agree(got, want, tol float64) bool {
	if math.IsNaN(got) || math.IsNaN(want) {
		return math.IsNaN(got) && math.IsNaN(want)
	}
	return scalar.EqualWithinRel(got, want, tol)
}

// A Variant is one way of computing the sum of reciprocals.
type Variant struct {
	Name string
	Run  func() (float64, error)
}

// Stats holds aggregate timing statistics across all runs of a variant.
type Stats struct {
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration
}

// ComputeStats calculates min, max, mean, and sample standard deviation over
// a slice of durations. It returns the zero Stats for an empty slice.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	xs := make([]float64, len(durations))
	for i, d := range durations {
		xs[i] = float64(d)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Stats{
		Min:    time.Duration(floats.Min(xs)),
		Max:    time.Duration(floats.Max(xs)),
		Mean:   time.Duration(mean),
		StdDev: time.Duration(std),
	}
}

// Result holds the outcome of all runs of a variant.
type Result struct {
	Name      string
	Value     float64
	Durations []time.Duration
	Stats     Stats
	Speedup   float64
	Verified  bool
}

/*
Run executes each variant runs times and collects the results. The first
variant is the baseline: the values of all other variants are verified
against its value with relative tolerance tol, and their speedups are
computed relative to its mean duration.

Run returns the first error returned by a variant, wrapped with its name.
The value of a variant must not change between runs.
*/
func Run(logger *slog.Logger, variants []Variant, runs int, tol float64) ([]Result, error) {
	if runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	results := make([]Result, 0, len(variants))
	for _, v := range variants {
		res := Result{Name: v.Name, Durations: make([]time.Duration, 0, runs)}
		for i := 0; i < runs; i++ {
			start := time.Now()
			value, err := v.Run()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", v.Name, err)
			}
			d := time.Since(start)
			if i > 0 && math.Float64bits(value) != math.Float64bits(res.Value) {
				return nil, fmt.Errorf("%s: run %d returned %v, previous runs returned %v", v.Name, i+1, value, res.Value)
			}
			res.Value = value
			res.Durations = append(res.Durations, d)
			logger.Debug("run finished", "variant", v.Name, "run", i+1, "duration", d, "value", value)
		}
		res.Stats = ComputeStats(res.Durations)
		results = append(results, res)
	}
	if len(results) == 0 {
		return results, nil
	}
	base := results[0]
	for i := range results {
		results[i].Verified = Agree(results[i].Value, base.Value, tol)
		if results[i].Stats.Mean > 0 {
			results[i].Speedup = float64(base.Stats.Mean) / float64(results[i].Stats.Mean)
		}
		if !results[i].Verified {
			logger.Warn("result disagrees with baseline",
				"variant", results[i].Name, "value", results[i].Value, "baseline", base.Value, "tolerance", tol)
		}
	}
	return results, nil
}

// AllVerified reports whether every result agrees with the baseline.
func AllVerified(results []Result) bool {
	for _, r := range results {
		if !r.Verified {
			return false
		}
	}
	return true
}

// FormatTable writes results as an aligned text table to w.
func FormatTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tVALUE\tMIN\tMEAN\tMAX\tSTDDEV\tSPEEDUP\tOK")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.12g\t%v\t%v\t%v\t%v\t%.2fx\t%t\n",
			r.Name, r.Value,
			r.Stats.Min, r.Stats.Mean, r.Stats.Max, r.Stats.StdDev,
			r.Speedup, r.Verified)
	}
	return tw.Flush()
}
