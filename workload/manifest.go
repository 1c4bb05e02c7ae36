package workload

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is written next to the generated files by WriteManifest.
const ManifestFileName = "manifest.yaml"

// Manifest records how a set of workload files was produced.
type Manifest struct {
	RunID     string       `yaml:"run_id"`
	CreatedAt string       `yaml:"created_at"`
	Seed      int64        `yaml:"seed"`
	Range     uint32       `yaml:"range"`
	Count     int          `yaml:"count"`
	Partition *Partition   `yaml:"partition,omitempty"`
	Files     []OutputFile `yaml:"files"`
}

// NewManifest describes a finished run. RunID is fresh for every call.
func NewManifest(spec *Spec, files []OutputFile) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Seed:      spec.Seed,
		Range:     spec.Range,
		Count:     spec.Count,
		Partition: spec.Partition,
		Files:     files,
	}
}

// WriteManifest marshals m to dir/manifest.yaml and returns the path.
func WriteManifest(dir string, m *Manifest) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// LoadManifest reads a manifest written by WriteManifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
