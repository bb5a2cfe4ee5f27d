package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanMissingRoot(t *testing.T) {
	_, err := NewFileScanner(filepath.Join(t.TempDir(), "nope")).Scan()
	assert.Error(t, err)
}

func TestFileScannerScanFindsLineupFiles(t *testing.T) {
	dir := t.TempDir()

	testFiles := []struct {
		path     string
		isLineup bool
	}{
		{"band-a.json", true},
		{"band-b.YAML", true},
		{"band-c.yml", true},
		{"members.jsonl", true},
		{"readme.txt", false},
		{"nested/deeper/band-d.json", true},
		{"nested/notes.md", false},
	}

	var expected []string
	for _, f := range testFiles {
		full := filepath.Join(dir, f.path)
		touch(t, full)
		if f.isLineup {
			expected = append(expected, full)
		}
	}

	files, err := NewFileScanner(dir).Scan()
	require.NoError(t, err)
	assert.ElementsMatch(t, expected, files)
	assert.IsIncreasing(t, files)
}

func TestFileScannerExplicitFilesAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	lineup := filepath.Join(dir, "band.json")
	other := filepath.Join(dir, "odd.lineup")
	touch(t, lineup)
	touch(t, other)

	files, err := NewFileScanner(dir, lineup, other).Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{lineup, other}, files)
}

func TestIsLineupFile(t *testing.T) {
	assert.True(t, IsLineupFile("a/b.json"))
	assert.True(t, IsLineupFile("B.JSONL"))
	assert.True(t, IsLineupFile("x.yaml"))
	assert.False(t, IsLineupFile("x.txt"))
	assert.False(t, IsLineupFile("json"))
}
