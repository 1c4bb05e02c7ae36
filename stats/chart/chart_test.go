package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/kvbench/stats"
)

var twoPoints = []stats.Result{
	{Threads: 1, Avg: 100},
	{Threads: 2, Avg: 60},
}

func TestRender_WritesPNG(t *testing.T) {
	// GIVEN two non-empty series
	c := NewChart("insert", t.TempDir())

	// WHEN rendered
	ok, err := Render(c, Series{Label: "scala", Results: twoPoints}, Series{Label: "c", Results: twoPoints})
	require.NoError(t, err)

	// THEN <title>.png exists and is a PNG
	assert.True(t, ok)
	data, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestRender_EmptySeries_NoFile(t *testing.T) {
	c := NewChart("lookup", t.TempDir())

	ok, err := Render(c, Series{Label: "scala", Results: twoPoints}, Series{Label: "c"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoFileExists(t, c.Path())

	ok, err = Render(c)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoFileExists(t, c.Path())
}

func TestRender_LogScale(t *testing.T) {
	c := NewChart("remove", t.TempDir())
	c.LogX = true

	ok, err := Render(c, Series{Label: "a", Results: twoPoints})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, c.Path())
}

func TestRender_LogScale_ZeroThreads(t *testing.T) {
	c := NewChart("action", t.TempDir())
	c.LogX = true

	_, err := Render(c, Series{Results: []stats.Result{{Threads: 0, Avg: 1}, {Threads: 2, Avg: 2}}})
	assert.Error(t, err)
	assert.NoFileExists(t, c.Path())
}

func TestRender_TooManySeries(t *testing.T) {
	s := Series{Results: twoPoints}
	_, err := Render(NewChart("x", t.TempDir()), s, s, s)
	assert.ErrorIs(t, err, ErrTooManySeries)
}

func TestRender_TitleWithSeparator_StaysInOutDir(t *testing.T) {
	// GIVEN a title carrying a path separator
	dir := t.TempDir()
	c := NewChart("insert (6/5 hp)", dir)

	// THEN the file name replaces it and rendering succeeds
	assert.Equal(t, filepath.Join(dir, "insert (6_5 hp).png"), c.Path())
	ok, err := Render(c, Series{Label: "6 hp", Results: twoPoints})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.FileExists(t, c.Path())
}
