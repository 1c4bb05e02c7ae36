package stats

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMalformedInput reports input whose structure cannot be interpreted,
	// such as a leaf directory whose name is not a thread count.
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptySample reports a request to aggregate a bucket with no samples.
	ErrEmptySample = errors.New("empty sample")
)

// Op is the benchmark operation a latency sample belongs to.
type Op int

const (
	OpInsert Op = iota
	OpLookup
	OpRemove
	OpAction
)

// Ops lists every operation in output order.
var Ops = []Op{OpInsert, OpLookup, OpRemove, OpAction}

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpLookup:
		return "lookup"
	case OpRemove:
		return "remove"
	case OpAction:
		return "action"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Sample is one latency measurement of op at a given thread count.
type Sample struct {
	Threads int
	Op      Op
	Latency float64
}

// Source yields the samples of one benchmark result set.
type Source interface {
	Samples() ([]Sample, error)
}

// Buckets groups latencies by operation, then by thread count.
type Buckets map[Op]map[int][]float64

// Add appends one sample to its bucket.
func (b Buckets) Add(s Sample) {
	byThreads, ok := b[s.Op]
	if !ok {
		byThreads = make(map[int][]float64)
		b[s.Op] = byThreads
	}
	byThreads[s.Threads] = append(byThreads[s.Threads], s.Latency)
}

// Threads returns the thread counts recorded for op, ascending.
func (b Buckets) Threads(op Op) []int {
	threads := make([]int, 0, len(b[op]))
	for n := range b[op] {
		threads = append(threads, n)
	}
	sort.Ints(threads)
	return threads
}

// Collect drains src into Buckets.
func Collect(src Source) (Buckets, error) {
	samples, err := src.Samples()
	if err != nil {
		return nil, err
	}
	b := make(Buckets)
	for _, s := range samples {
		b.Add(s)
	}
	return b, nil
}
