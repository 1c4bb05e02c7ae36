package workload

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration reports invalid or inconsistent generation parameters.
var ErrConfiguration = errors.New("invalid configuration")

// Spec is the generation configuration.
// Loaded from YAML via LoadSpec(path) or assembled from CLI arguments.
type Spec struct {
	Range     uint32     `yaml:"range"`
	Count     int        `yaml:"count"`
	Seed      int64      `yaml:"seed"`
	OutDir    string     `yaml:"out_dir,omitempty"`
	Partition *Partition `yaml:"partition,omitempty"`
}

// Partition is the insert/lookup/remove percentage mix of a partitioned run.
type Partition struct {
	Insert int `yaml:"insert"`
	Lookup int `yaml:"lookup"`
	Remove int `yaml:"remove"`
}

// Sum returns the total of the three percentages.
func (p Partition) Sum() int {
	return p.Insert + p.Lookup + p.Remove
}

// Validate checks that the percentages are non-negative and total exactly 100.
func (p Partition) Validate() error {
	if p.Insert < 0 || p.Lookup < 0 || p.Remove < 0 {
		return fmt.Errorf("%w: partition percentages must be non-negative, got %d/%d/%d",
			ErrConfiguration, p.Insert, p.Lookup, p.Remove)
	}
	if p.Sum() != 100 {
		return fmt.Errorf("%w: partitioning must be summed up to 100: %d + %d + %d = %d",
			ErrConfiguration, p.Insert, p.Lookup, p.Remove, p.Sum())
	}
	return nil
}

// Counts splits count by the percentages using integer division.
// The parts may total less than count when the split is uneven.
func (p Partition) Counts(count int) (inserts, lookups, removes int) {
	return count * p.Insert / 100, count * p.Lookup / 100, count * p.Remove / 100
}

// FileName is the partitioned output file name, e.g. "50_30_20_sample.bin".
func (p Partition) FileName() string {
	return fmt.Sprintf("%d_%d_%d_sample.bin", p.Insert, p.Lookup, p.Remove)
}

// LoadSpec reads and parses a YAML generation spec.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks every field of the spec.
func (s *Spec) Validate() error {
	if err := validateRange(s.Range, s.Count); err != nil {
		return err
	}
	if s.Partition != nil {
		return s.Partition.Validate()
	}
	return nil
}

func validateRange(rangeN uint32, count int) error {
	if rangeN < 1 {
		return fmt.Errorf("%w: range must be at least 1, got %d", ErrConfiguration, rangeN)
	}
	if count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrConfiguration, count)
	}
	// Inserts carry 2*count integers behind a u32 prefix.
	if count > math.MaxUint32/2 {
		return fmt.Errorf("%w: count %d does not fit the u32 count prefix", ErrConfiguration, count)
	}
	return nil
}
