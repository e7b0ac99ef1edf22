package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.jsx"), "(<div/>)")
	writeFile(t, filepath.Join(dir, "nested", "widget.jsx"), "(<Widget/>)")
	writeFile(t, filepath.Join(dir, "readme.md"), "# docs")

	s := New([]string{".jsx"}, nil)
	files, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	for _, f := range files {
		assert.Equal(t, ".jsx", filepath.Ext(f.Path))
		assert.NotZero(t, f.Hash)
		assert.NotZero(t, f.Size)
	}
}

func TestScanDirectorySkipsHiddenAndVendor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.jsx"), "x")
	writeFile(t, filepath.Join(dir, ".git", "skip.jsx"), "x")
	writeFile(t, filepath.Join(dir, "vendor", "skip.jsx"), "x")
	writeFile(t, filepath.Join(dir, "node_modules", "skip.jsx"), "x")

	s := New([]string{".jsx"}, nil)
	files, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "keep.jsx", filepath.Base(files[0].Path))
}

func TestScanExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.jsx"), "x")
	writeFile(t, filepath.Join(dir, "page_test.jsx"), "x")
	writeFile(t, filepath.Join(dir, "old.jsx.bak"), "x")

	s := New([]string{".jsx", ".bak"}, []string{"*_test.jsx", "*.bak"})
	files, err := s.ScanDirectory(dir)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "page.jsx", filepath.Base(files[0].Path))
}

func TestScanPathsMixedFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.jsx")
	writeFile(t, single, "x")
	writeFile(t, filepath.Join(dir, "tree", "a.jsx"), "x")
	writeFile(t, filepath.Join(dir, "tree", "b.jsx"), "x")

	s := New([]string{".jsx"}, nil)
	files, err := s.ScanPaths([]string{single, filepath.Join(dir, "tree")})
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestScanPathsMissingPath(t *testing.T) {
	s := New([]string{".jsx"}, nil)
	_, err := s.ScanPaths([]string{"/does/not/exist"})
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	s := New([]string{".jsx"}, []string{"*_test.jsx"})

	assert.True(t, s.Matches("src/page.jsx"))
	assert.False(t, s.Matches("src/page.go"))
	assert.False(t, s.Matches("src/page_test.jsx"))
}

func TestChangedTracksContentHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.jsx")
	writeFile(t, path, "first")

	s := New([]string{".jsx"}, nil)

	changed, err := s.Changed(path)
	require.NoError(t, err)
	assert.True(t, changed, "first observation counts as changed")

	changed, err = s.Changed(path)
	require.NoError(t, err)
	assert.False(t, changed, "identical content is unchanged")

	writeFile(t, path, "second")
	changed, err = s.Changed(path)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestChangedMissingFile(t *testing.T) {
	s := New([]string{".jsx"}, nil)
	_, err := s.Changed("/does/not/exist.jsx")
	assert.Error(t, err)
}
