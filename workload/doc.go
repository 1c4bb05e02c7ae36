// Package workload generates reproducible key-value benchmark workloads and
// encodes them in the fixed-layout binary format read by the native drivers.
//
// # Reading Guide
//
//   - rng.go: PartitionedRNG, the only source of randomness (explicit, seeded per run)
//   - action.go: the closed Action sum type (Insert, Lookup, Remove)
//   - generator.go: uniform and partitioned synthesis
//   - encoder.go / decoder.go: the binary layout and its inverse
//
// Uniform mode produces three homogeneous files (inserts, lookups, removes).
// Partitioned mode produces one file of interleaved, fixed-stride records.
// Every lookup and remove key is drawn from the keys inserted in the same run.
package workload
