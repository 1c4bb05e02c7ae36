package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Partition
		wantErr bool
	}{
		{"sums to 100", Partition{30, 30, 40}, false},
		{"sums to 101", Partition{30, 30, 41}, true},
		{"sums to 99", Partition{33, 33, 33}, true},
		{"all inserts", Partition{100, 0, 0}, false},
		{"negative part", Partition{120, -10, -10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPartition_Validate_MessageNamesTheSum(t *testing.T) {
	err := Partition{30, 30, 41}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partitioning must be summed up to 100: 30 + 30 + 41 = 101")
}

func TestPartition_CountsAndFileName(t *testing.T) {
	p := Partition{Insert: 50, Lookup: 30, Remove: 20}
	i, l, r := p.Counts(1000)
	assert.Equal(t, 500, i)
	assert.Equal(t, 300, l)
	assert.Equal(t, 200, r)
	assert.Equal(t, "50_30_20_sample.bin", p.FileName())

	// Uneven splits truncate.
	i, l, r = Partition{Insert: 34, Lookup: 33, Remove: 33}.Counts(10)
	assert.Equal(t, 3, i)
	assert.Equal(t, 3, l)
	assert.Equal(t, 3, r)
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"uniform", Spec{Range: 100, Count: 10}, false},
		{"zero count", Spec{Range: 1, Count: 0}, false},
		{"zero range", Spec{Range: 0, Count: 10}, true},
		{"negative count", Spec{Range: 10, Count: -1}, true},
		{"bad partition", Spec{Range: 10, Count: 10, Partition: &Partition{30, 30, 41}}, true},
		{"good partition", Spec{Range: 10, Count: 10, Partition: &Partition{30, 30, 40}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	content := `
range: 1000
count: 50
seed: 3
out_dir: out
partition:
  insert: 50
  lookup: 25
  remove: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	spec, err := LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), spec.Range)
	assert.Equal(t, 50, spec.Count)
	assert.Equal(t, int64(3), spec.Seed)
	assert.Equal(t, "out", spec.OutDir)
	require.NotNil(t, spec.Partition)
	assert.Equal(t, Partition{50, 25, 25}, *spec.Partition)
	assert.NoError(t, spec.Validate())
}

func TestLoadSpec_UnknownField_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("range: 10\ncuont: 5\n"), 0644))

	_, err := LoadSpec(path)
	assert.Error(t, err)
}

func TestLoadSpec_MissingFile(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
