package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mid", "a.MIDI", "notes.txt", "sub/c.mid"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	assert := assert.New(t)
	paths, err := GatherAllMidiPaths(dir, 0)
	require.NoError(t, err)
	assert.Equal([]string{
		filepath.Join(dir, "a.MIDI"),
		filepath.Join(dir, "b.mid"),
		filepath.Join(dir, "sub/c.mid"),
	}, paths)

	paths, err = GatherAllMidiPaths(dir, 2)
	require.NoError(t, err)
	assert.Len(paths, 2)

	paths, err = GatherAllMidiPaths(filepath.Join(dir, "b.mid"), 0)
	require.NoError(t, err)
	assert.Equal([]string{filepath.Join(dir, "b.mid")}, paths)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "nope"), 0)
	assert.Error(err)
}

func TestGenerics(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"a", "b", "c"}, GetKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Equal([]int{1, 2, 5}, Unique([]int{5, 1, 2, 5, 1}))
	assert.Equal(3, Clamp(7, 1, 3))
	assert.Equal(1, Clamp(-2, 1, 3))
	assert.Equal(2, Clamp(2, 1, 3))
	assert.Equal(int64(6), Sum([]uint8{1, 2, 3}))
}
