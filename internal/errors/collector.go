package errors

import (
	"fmt"
	"sync"
	"time"
)

// FileError records one failed match inside one source file.
type FileError struct {
	File      string
	Original  string
	Message   string
	Timestamp time.Time
}

// Error implements the error interface.
func (fe *FileError) Error() string {
	return fmt.Sprintf("%s: %s", fe.File, fe.Message)
}

// Collector aggregates per-file transform failures across a run. It is safe
// for concurrent use so watch mode can record from its handler goroutine.
type Collector struct {
	fileErrors []FileError
	errors     []error
	mutex      sync.RWMutex
}

// NewCollector creates a new error collector.
func NewCollector() *Collector {
	return &Collector{
		fileErrors: make([]FileError, 0),
		errors:     make([]error, 0),
	}
}

// Add adds a file error to the collector.
func (c *Collector) Add(err FileError) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	err.Timestamp = time.Now()
	c.fileErrors = append(c.fileErrors, err)
}

// AddError adds a general error to the collector.
func (c *Collector) AddError(err error) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = append(c.errors, err)
}

// FileErrors returns all collected file errors.
func (c *Collector) FileErrors() []FileError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]FileError, len(c.fileErrors))
	copy(result, c.fileErrors)
	return result
}

// ErrorsByFile returns errors for a specific file.
func (c *Collector) ErrorsByFile(file string) []FileError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	var out []FileError
	for _, err := range c.fileErrors {
		if err.File == file {
			out = append(out, err)
		}
	}
	return out
}

// HasErrors returns true if there are any errors.
func (c *Collector) HasErrors() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.fileErrors) > 0 || len(c.errors) > 0
}

// Clear clears all errors.
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.fileErrors = c.fileErrors[:0]
	c.errors = c.errors[:0]
}
