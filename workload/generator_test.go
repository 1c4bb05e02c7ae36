package workload

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(NewPartitionedRNG(NewRunKey(seed)))
}

func keySet(keys []uint32) map[uint32]bool {
	set := make(map[uint32]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func TestSampleUniform_RangeAndCount(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(0)).ForSubsystem(SubsystemKeys)

	vals := SampleUniform(rng, 10, 1000)
	require.Len(t, vals, 1000)
	for i, v := range vals {
		if v >= 10 {
			t.Fatalf("value %d = %d, want < 10", i, v)
		}
	}

	assert.Empty(t, SampleUniform(rng, 10, 0))
	for _, v := range SampleUniform(rng, 1, 20) {
		assert.Equal(t, uint32(0), v, "range 1 admits only zero")
	}
}

func TestShuffledSubset_NoRepeatsWithinPass(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(0)).ForSubsystem(SubsystemShuffle)
	keyspace := []uint32{1, 2, 3, 4, 5, 6, 7, 8}
	original := append([]uint32(nil), keyspace...)

	sub := ShuffledSubset(rng, keyspace, 5)
	require.Len(t, sub, 5)
	assert.Len(t, keySet(sub), 5, "keys repeat within one pass")
	assert.Equal(t, original, keyspace, "keyspace must not be mutated")
}

func TestShuffledSubset_LongerThanKeyspace_CyclesPasses(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(0)).ForSubsystem(SubsystemShuffle)
	keyspace := []uint32{10, 20, 30}

	sub := ShuffledSubset(rng, keyspace, 7)
	require.Len(t, sub, 7)
	// First pass is a permutation of the keyspace.
	assert.ElementsMatch(t, keyspace, sub[:3])
	assert.ElementsMatch(t, keyspace, sub[3:6])
	assert.Contains(t, keyspace, sub[6])
}

func TestShuffledSubset_EmptyInputs(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(0)).ForSubsystem(SubsystemShuffle)
	assert.Empty(t, ShuffledSubset(rng, nil, 5))
	assert.Empty(t, ShuffledSubset(rng, []uint32{1}, 0))
}

func TestGenerateUniform_ShapesAndBounds(t *testing.T) {
	// GIVEN range 100 and count 50
	w, err := newTestGenerator(0).GenerateUniform(100, 50)
	require.NoError(t, err)

	// THEN every output has count entries within range
	require.Len(t, w.Inserts, 50)
	require.Len(t, w.Lookups, 50)
	require.Len(t, w.Removes, 50)
	for _, ins := range w.Inserts {
		assert.Less(t, ins.Key, uint32(100))
		assert.Less(t, ins.Value, uint32(100))
	}

	// AND lookups/removes are permutations of the key space
	keyspace := w.KeySpace()
	assert.ElementsMatch(t, keyspace, w.Lookups)
	assert.ElementsMatch(t, keyspace, w.Removes)
}

func TestGenerateUniform_ZeroCount(t *testing.T) {
	w, err := newTestGenerator(0).GenerateUniform(10, 0)
	require.NoError(t, err)
	assert.Empty(t, w.Inserts)
	assert.Empty(t, w.Lookups)
	assert.Empty(t, w.Removes)
}

func TestGenerateUniform_InvalidRange(t *testing.T) {
	_, err := newTestGenerator(0).GenerateUniform(0, 10)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGenerateUniform_Deterministic_ByteIdentical(t *testing.T) {
	// GIVEN two independent generators with the same seed
	w1, err := newTestGenerator(0).GenerateUniform(1000, 200)
	require.NoError(t, err)
	w2, err := newTestGenerator(0).GenerateUniform(1000, 200)
	require.NoError(t, err)

	// THEN encoded files are byte-identical
	assert.True(t, bytes.Equal(MarshalInserts(w1.Inserts), MarshalInserts(w2.Inserts)))
	assert.True(t, bytes.Equal(MarshalKeys(w1.Lookups), MarshalKeys(w2.Lookups)))
	assert.True(t, bytes.Equal(MarshalKeys(w1.Removes), MarshalKeys(w2.Removes)))
}

func TestGenerateUniform_DifferentSeeds_Differ(t *testing.T) {
	w1, err := newTestGenerator(1).GenerateUniform(1_000_000, 100)
	require.NoError(t, err)
	w2, err := newTestGenerator(2).GenerateUniform(1_000_000, 100)
	require.NoError(t, err)
	assert.NotEqual(t, w1.Inserts, w2.Inserts)
}

func TestGeneratePartitioned_PartitionInvariant(t *testing.T) {
	// GIVEN a 50/30/20 split of 1000 actions
	p := Partition{Insert: 50, Lookup: 30, Remove: 20}
	w, err := newTestGenerator(0).GeneratePartitioned(10_000, 1000, p)
	require.NoError(t, err)

	// THEN the kinds add up to count
	counts := w.CountKinds()
	assert.Equal(t, 500, counts[KindInsert])
	assert.Equal(t, 300, counts[KindLookup])
	assert.Equal(t, 200, counts[KindRemove])
	assert.Len(t, w.Actions, 1000)

	// AND every lookup/remove key was inserted
	inserted := make(map[uint32]bool)
	for _, a := range w.Actions {
		if ins, ok := a.(Insert); ok {
			inserted[ins.Key] = true
		}
	}
	for i, a := range w.Actions {
		if a.Kind() != KindInsert && !inserted[ActionKey(a)] {
			t.Fatalf("action %d (%s) targets key %d that was never inserted", i, a.Kind(), ActionKey(a))
		}
	}
	assert.NoError(t, CheckSubset(w.Actions))
}

func TestGeneratePartitioned_IsInterleaved(t *testing.T) {
	p := Partition{Insert: 40, Lookup: 30, Remove: 30}
	w, err := newTestGenerator(0).GeneratePartitioned(1000, 300, p)
	require.NoError(t, err)

	// The unshuffled order would be all inserts first; a shuffled sequence
	// has a non-insert somewhere in the first 120 slots.
	interleaved := false
	for _, a := range w.Actions[:120] {
		if a.Kind() != KindInsert {
			interleaved = true
			break
		}
	}
	assert.True(t, interleaved, "actions were not shuffled across kinds")
}

func TestGeneratePartitioned_MoreLookupsThanInserts(t *testing.T) {
	// GIVEN lookups that outnumber the inserts
	p := Partition{Insert: 10, Lookup: 80, Remove: 10}
	w, err := newTestGenerator(0).GeneratePartitioned(1000, 100, p)
	require.NoError(t, err)

	// THEN the requested count is still met and stays within the inserts
	counts := w.CountKinds()
	assert.Equal(t, 10, counts[KindInsert])
	assert.Equal(t, 80, counts[KindLookup])
	assert.Equal(t, 10, counts[KindRemove])
	assert.NoError(t, CheckSubset(w.Actions))
}

func TestGeneratePartitioned_NoInsertsButLookups_Fails(t *testing.T) {
	_, err := newTestGenerator(0).GeneratePartitioned(1000, 100, Partition{Insert: 0, Lookup: 50, Remove: 50})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGeneratePartitioned_ValidationFailsBeforeSampling(t *testing.T) {
	// GIVEN a generator whose first call is rejected
	g := newTestGenerator(0)
	_, err := g.GeneratePartitioned(1000, 100, Partition{30, 30, 41})
	require.ErrorIs(t, err, ErrConfiguration)

	// WHEN the same generator then runs a valid split
	got, err := g.GeneratePartitioned(1000, 100, Partition{30, 30, 40})
	require.NoError(t, err)

	// THEN it matches a fresh generator: the rejected call drew nothing
	want, err := newTestGenerator(0).GeneratePartitioned(1000, 100, Partition{30, 30, 40})
	require.NoError(t, err)
	assert.Equal(t, MarshalActions(want.Actions), MarshalActions(got.Actions))
}

func TestGeneratePartitioned_Deterministic(t *testing.T) {
	p := Partition{Insert: 60, Lookup: 20, Remove: 20}
	w1, err := newTestGenerator(0).GeneratePartitioned(5000, 500, p)
	require.NoError(t, err)
	w2, err := newTestGenerator(0).GeneratePartitioned(5000, 500, p)
	require.NoError(t, err)
	assert.Equal(t, MarshalActions(w1.Actions), MarshalActions(w2.Actions))
}
