// Package outfile persists generated text next to its source file. Editors
// and build tools on some platforms hold short-lived locks on output files,
// so writes retry with backoff before giving up.
package outfile

import (
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/tagforge/internal/errors"
)

const (
	writeAttempts = 5
	retryDelay    = 50 * time.Millisecond
)

// OutputPath maps a source path to its generated sibling: the source path
// with suffix appended, so page.jsx becomes page.jsx.cs.
func OutputPath(sourcePath, suffix string) string {
	return sourcePath + suffix
}

// Write persists data to path, retrying transient failures with linear
// backoff. The write goes through a temp file in the same directory followed
// by a rename, so readers never observe a half-written file.
func Write(path string, data []byte) error {
	var lastErr error

	for attempt := 0; attempt < writeAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * retryDelay)
		}

		if lastErr = writeOnce(path, data); lastErr == nil {
			return nil
		}
	}

	return errors.NewIOError("write_failed", "could not write generated file", lastErr).WithLocation(path, 0)
}

func writeOnce(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Chmod(path, 0o644)
}
