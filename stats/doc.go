// Package stats turns benchmark output into per-thread-count latency
// summaries.
//
// A Source yields (threads, op, latency) samples. Two producers exist:
// FlatLogSource for a single log with thread-count headers, and TreeSource
// for a directory tree whose leaf directories are named after thread counts.
// Collect groups samples into Buckets; Aggregate reduces each bucket to a
// Result.
package stats
