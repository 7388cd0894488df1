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
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))
}

func TestScanFindsNestedLogsSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "2024", "march.jsonl"))
	touch(t, filepath.Join(dir, "2024", "april.jsonl"))
	touch(t, filepath.Join(dir, "latest.jsonl"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "export.JSONL"))

	files, err := NewFileScanner(dir).Scan()
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "2024", "april.jsonl"),
		filepath.Join(dir, "2024", "march.jsonl"),
		filepath.Join(dir, "export.JSONL"),
		filepath.Join(dir, "latest.jsonl"),
	}
	assert.Equal(t, want, files)
}

func TestScanEmptyDir(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanMissingDir(t *testing.T) {
	files, err := NewFileScanner(filepath.Join(t.TempDir(), "absent")).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}
