package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// UniformWorkload is the output of uniform mode: three homogeneous sequences.
type UniformWorkload struct {
	Inserts []Insert
	Lookups []uint32
	Removes []uint32
}

// KeySpace returns the insert keys in generation order.
func (w *UniformWorkload) KeySpace() []uint32 {
	keys := make([]uint32, len(w.Inserts))
	for i, ins := range w.Inserts {
		keys[i] = ins.Key
	}
	return keys
}

// PartitionedWorkload is the output of partitioned mode: one interleaved sequence.
type PartitionedWorkload struct {
	Partition Partition
	Actions   []Action
}

// CountKinds returns how many actions of each kind the workload holds.
func (w *PartitionedWorkload) CountKinds() map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, a := range w.Actions {
		counts[a.Kind()]++
	}
	return counts
}

// Generator synthesizes workloads from an explicit PartitionedRNG.
// Deterministic given the same RunKey and parameters.
type Generator struct {
	rng *PartitionedRNG
}

// NewGenerator creates a Generator drawing from rng.
func NewGenerator(rng *PartitionedRNG) *Generator {
	return &Generator{rng: rng}
}

// GenerateUniform draws count (key, value) inserts from [0, rangeN), then an
// independent shuffle of the insert keys for lookups and another for removes.
func (g *Generator) GenerateUniform(rangeN uint32, count int) (*UniformWorkload, error) {
	if err := validateRange(rangeN, count); err != nil {
		return nil, err
	}
	keyRNG := g.rng.ForSubsystem(SubsystemKeys)
	shuffleRNG := g.rng.ForSubsystem(SubsystemShuffle)

	// Keys and values are interleaved in a single draw of 2*count integers.
	integers := SampleUniform(keyRNG, rangeN, 2*count)
	w := &UniformWorkload{Inserts: make([]Insert, count)}
	for i := range w.Inserts {
		w.Inserts[i] = Insert{Key: integers[2*i], Value: integers[2*i+1]}
	}

	keyspace := w.KeySpace()
	w.Lookups = ShuffledSubset(shuffleRNG, keyspace, count)
	w.Removes = ShuffledSubset(shuffleRNG, keyspace, count)

	logrus.Debugf("uniform workload: %d inserts, %d lookups, %d removes over range %d",
		len(w.Inserts), len(w.Lookups), len(w.Removes), rangeN)
	return w, nil
}

// GeneratePartitioned builds one interleaved action sequence whose mix follows p.
// Lookup and remove keys are drawn independently from the insert keys, so each
// set is a subset of the inserts; overlap between the two is left to chance.
// The partition is validated before anything is sampled.
func (g *Generator) GeneratePartitioned(rangeN uint32, count int, p Partition) (*PartitionedWorkload, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := validateRange(rangeN, count); err != nil {
		return nil, err
	}
	nInsert, nLookup, nRemove := p.Counts(count)
	if nInsert == 0 && nLookup+nRemove > 0 {
		return nil, fmt.Errorf("%w: %d lookups and %d removes need at least one insert (count=%d, insert=%d%%)",
			ErrConfiguration, nLookup, nRemove, count, p.Insert)
	}

	keyRNG := g.rng.ForSubsystem(SubsystemKeys)
	shuffleRNG := g.rng.ForSubsystem(SubsystemShuffle)

	keys := SampleUniform(keyRNG, rangeN, nInsert)
	values := SampleUniform(keyRNG, rangeN, nInsert)
	lookupKeys := ShuffledSubset(shuffleRNG, keys, nLookup)
	removeKeys := ShuffledSubset(shuffleRNG, keys, nRemove)

	actions := make([]Action, 0, nInsert+nLookup+nRemove)
	for i := range keys {
		actions = append(actions, Insert{Key: keys[i], Value: values[i]})
	}
	for _, k := range lookupKeys {
		actions = append(actions, Lookup{Key: k})
	}
	for _, k := range removeKeys {
		actions = append(actions, Remove{Key: k})
	}
	shuffleRNG.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
	})

	logrus.Debugf("partitioned workload %d/%d/%d: %d inserts, %d lookups, %d removes",
		p.Insert, p.Lookup, p.Remove, nInsert, nLookup, nRemove)
	return &PartitionedWorkload{Partition: p, Actions: actions}, nil
}
