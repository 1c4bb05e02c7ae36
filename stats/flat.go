package stats

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

const maxLineBytes = 1 << 20

// FlatLogSource reads a single log where thread-count header lines are
// interleaved with per-operation timing lines. Every timing line belongs to
// the most recent header; lines before the first header belong to 0 threads.
type FlatLogSource struct {
	Path     string
	Patterns *Patterns
}

// NewFlatLogSource creates a FlatLogSource using DefaultFlatPatterns.
func NewFlatLogSource(path string) *FlatLogSource {
	return &FlatLogSource{Path: path, Patterns: DefaultFlatPatterns.MustCompile()}
}

// Samples implements Source.
func (s *FlatLogSource) Samples() ([]Sample, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", s.Path, err)
	}
	defer func() { _ = file.Close() }()

	var samples []Sample
	threads := 0
	lines := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines++
		line := scanner.Text()
		if n, ok := s.Patterns.matchThreads(line); ok {
			threads = n
			continue
		}
		samples = append(samples, s.Patterns.matchOps(line, threads)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log %s: %w", s.Path, err)
	}
	logrus.Debugf("flat log %s: %d lines, %d samples", s.Path, lines, len(samples))
	return samples, nil
}
