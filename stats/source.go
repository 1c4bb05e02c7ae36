package stats

import (
	"fmt"
	"os"
)

// OpenSource picks the source variant for path: a directory is read as a
// result tree, a regular file as a flat log. Non-nil overrides replace the
// default patterns of the matching variant.
func OpenSource(path string, overrides *PatternFile) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	if info.IsDir() {
		cfg := DefaultTreePatterns
		if overrides != nil && overrides.Tree != nil {
			cfg = *overrides.Tree
		}
		p, err := cfg.Compile()
		if err != nil {
			return nil, err
		}
		return &TreeSource{Root: path, Patterns: p}, nil
	}
	cfg := DefaultFlatPatterns
	if overrides != nil && overrides.Flat != nil {
		cfg = *overrides.Flat
	}
	p, err := cfg.Compile()
	if err != nil {
		return nil, err
	}
	return &FlatLogSource{Path: path, Patterns: p}, nil
}
