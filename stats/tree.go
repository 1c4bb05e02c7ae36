package stats

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// TreeSource reads a directory tree with one leaf directory per thread count.
// The leaf's name is the thread count; each regular file directly inside it
// holds the output of one benchmark run. Directories that contain
// subdirectories are traversed but never scanned themselves. Symlinks to
// directories count as subdirectories and are followed; a directory reached
// twice is scanned once.
type TreeSource struct {
	Root     string
	Patterns *Patterns
}

// NewTreeSource creates a TreeSource using DefaultTreePatterns.
func NewTreeSource(root string) *TreeSource {
	return &TreeSource{Root: root, Patterns: DefaultTreePatterns.MustCompile()}
}

// Samples implements Source.
func (s *TreeSource) Samples() ([]Sample, error) {
	w := &treeWalk{patterns: s.Patterns, visited: make(map[string]bool)}
	if err := w.visit(s.Root); err != nil {
		return nil, err
	}
	logrus.Debugf("result tree %s: %d leaves, %d samples", s.Root, w.leaves, len(w.samples))
	return w.samples, nil
}

type treeWalk struct {
	patterns *Patterns
	visited  map[string]bool // resolved directory paths
	samples  []Sample
	leaves   int
}

// visit lists dir once and either descends into its subdirectories or, when
// it has none, scans it as a leaf.
func (w *treeWalk) visit(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if w.visited[resolved] {
		return nil
	}
	w.visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	var subdirs, files []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		mode, ok := entryType(path, e)
		if !ok {
			logrus.Debugf("skipping dangling symlink %s", path)
			continue
		}
		switch {
		case mode.IsDir():
			subdirs = append(subdirs, path)
		case mode.IsRegular():
			files = append(files, path)
		}
	}

	if len(subdirs) == 0 {
		return w.scanLeaf(dir, files)
	}
	for _, sub := range subdirs {
		if err := w.visit(sub); err != nil {
			return err
		}
	}
	return nil
}

func (w *treeWalk) scanLeaf(dir string, files []string) error {
	threads, err := strconv.Atoi(filepath.Base(dir))
	if err != nil {
		return fmt.Errorf("%w: leaf directory %s is not a thread count", ErrMalformedInput, dir)
	}
	w.leaves++
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading result file: %w", err)
		}
		w.samples = append(w.samples, w.patterns.matchOps(string(data), threads)...)
	}
	return nil
}

// entryType reports the type of e, following a symlink to its target.
// ok is false for a dangling symlink.
func entryType(path string, e fs.DirEntry) (mode fs.FileMode, ok bool) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type(), true
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Mode().Type(), true
}
