package workload

import "math/rand"

// SampleUniform draws count values uniformly from [0, rangeN) with replacement.
// rangeN must be at least 1; count == 0 yields an empty slice.
func SampleUniform(rng *rand.Rand, rangeN uint32, count int) []uint32 {
	out := make([]uint32, count)
	for i := range out {
		out[i] = uint32(rng.Int63n(int64(rangeN)))
	}
	return out
}

// ShuffledSubset returns n keys drawn from keyspace by shuffling a copy and
// truncating it. Keys never repeat within one pass over the keyspace; when n
// exceeds len(keyspace), further independently shuffled passes are appended.
// The keyspace itself is left untouched.
func ShuffledSubset(rng *rand.Rand, keyspace []uint32, n int) []uint32 {
	if n <= 0 || len(keyspace) == 0 {
		return []uint32{}
	}
	out := make([]uint32, 0, n)
	pass := make([]uint32, len(keyspace))
	for len(out) < n {
		copy(pass, keyspace)
		rng.Shuffle(len(pass), func(i, j int) {
			pass[i], pass[j] = pass[j], pass[i]
		})
		take := min(n-len(out), len(pass))
		out = append(out, pass[:take]...)
	}
	return out
}
