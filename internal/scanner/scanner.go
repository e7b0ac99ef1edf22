// Package scanner discovers transformable source files under the configured
// scan paths. Sources are opaque text to the rest of the pipeline, so the
// scanner records only identity: path, size, mod time, and a content hash
// used by watch mode to skip unchanged files.
package scanner

import (
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// SourceFile identifies one discovered source.
type SourceFile struct {
	Path    string
	Size    int64
	ModTime time.Time
	Hash    uint64
}

// SourceScanner walks scan paths collecting files that match the configured
// extensions and survive the exclude patterns. It is safe for concurrent use
// so the watch handler can rescan while a manual scan runs.
type SourceScanner struct {
	extensions []string
	excludes   []string

	mutex  sync.Mutex
	hashes map[string]uint64
}

// New creates a scanner for the given extensions and exclude patterns.
// Patterns match against the file base name, as in filepath.Match.
func New(extensions, excludePatterns []string) *SourceScanner {
	return &SourceScanner{
		extensions: extensions,
		excludes:   excludePatterns,
		hashes:     make(map[string]uint64),
	}
}

// ScanPaths scans every configured path in order and concatenates the
// results. Paths may be directories or individual files.
func (s *SourceScanner) ScanPaths(paths []string) ([]SourceFile, error) {
	var out []SourceFile

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if sf, ok := s.stat(path); ok {
				out = append(out, sf)
			}
			continue
		}

		files, err := s.ScanDirectory(path)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}

	return out, nil
}

// ScanDirectory walks one directory tree. Vendor trees, node_modules, and
// dot-directories are skipped.
func (s *SourceScanner) ScanDirectory(dir string) ([]SourceFile, error) {
	var out []SourceFile

	err := filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if de.IsDir() {
			name := de.Name()
			if path != dir && (name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if sf, ok := s.stat(path); ok {
			out = append(out, sf)
		}
		return nil
	})

	return out, err
}

// Matches reports whether a path would be picked up by a scan.
func (s *SourceScanner) Matches(path string) bool {
	if !s.matchesExtension(path) {
		return false
	}
	return !s.excluded(filepath.Base(path))
}

// Changed hashes the file at path and reports whether its content differs
// from the last time it was seen, recording the new hash.
func (s *SourceScanner) Changed(path string) (bool, error) {
	hash, err := hashFile(path)
	if err != nil {
		return false, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	prev, seen := s.hashes[path]
	s.hashes[path] = hash
	return !seen || prev != hash, nil
}

func (s *SourceScanner) stat(path string) (SourceFile, bool) {
	if !s.Matches(path) {
		return SourceFile{}, false
	}

	info, err := os.Stat(path)
	if err != nil {
		return SourceFile{}, false
	}

	hash, err := hashFile(path)
	if err != nil {
		return SourceFile{}, false
	}

	s.mutex.Lock()
	s.hashes[path] = hash
	s.mutex.Unlock()

	return SourceFile{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Hash:    hash,
	}, true
}

func (s *SourceScanner) matchesExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (s *SourceScanner) excluded(base string) bool {
	for _, pattern := range s.excludes {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

func hashFile(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64(), nil
}
