package stats

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result summarizes the latencies recorded at one thread count.
type Result struct {
	Threads int     `yaml:"threads" msgpack:"threads"`
	Avg     float64 `yaml:"avg" msgpack:"avg"`
	Var     float64 `yaml:"var" msgpack:"var"`
	Min     float64 `yaml:"min" msgpack:"min"`
	Max     float64 `yaml:"max" msgpack:"max"`
}

// Summarize computes mean, population variance, min and max of samples.
// An empty slice is ErrEmptySample, never a NaN.
func Summarize(threads int, samples []float64) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("%w: no samples for %d threads", ErrEmptySample, threads)
	}
	mean, variance := stat.PopMeanVariance(samples, nil)
	return Result{
		Threads: threads,
		Avg:     mean,
		Var:     variance,
		Min:     floats.Min(samples),
		Max:     floats.Max(samples),
	}, nil
}

// Aggregate summarizes every thread count, sorted ascending by threads.
func Aggregate(byThreads map[int][]float64) ([]Result, error) {
	threads := make([]int, 0, len(byThreads))
	for n := range byThreads {
		threads = append(threads, n)
	}
	sort.Ints(threads)

	results := make([]Result, 0, len(threads))
	for _, n := range threads {
		r, err := Summarize(n, byThreads[n])
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// AggregateAll runs Aggregate for every operation. Operations without any
// samples map to an empty slice.
func AggregateAll(b Buckets) (map[Op][]Result, error) {
	out := make(map[Op][]Result, len(Ops))
	for _, op := range Ops {
		results, err := Aggregate(b[op])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out[op] = results
	}
	return out, nil
}

// PrintResults writes one summary line per thread count.
func PrintResults(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "#threads: %d avg: %g var: %g min: %g max: %g\n",
			r.Threads, r.Avg, r.Var, r.Min, r.Max); err != nil {
			return err
		}
	}
	return nil
}
