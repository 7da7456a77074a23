// Package fsutil prepares the output directory and writes run artifacts.
package fsutil

import (
	"fmt"
	"os"
)

// StorageError reports a failure to create the output directory or write an
// artifact into it.
type StorageError struct {
	Op   string // "mkdir", "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// EnsureDir creates dir and any missing parents. Calling it for an existing
// directory is a no-op.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// WriteFile writes data to path, replacing any existing file.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Create opens path for writing, truncating any existing file. The caller
// must pass the returned file to Close.
func Create(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &StorageError{Op: "write", Path: path, Err: err}
	}
	return f, nil
}

// Close closes f and reports a failed flush as a StorageError.
func Close(f *os.File) error {
	if err := f.Close(); err != nil {
		return &StorageError{Op: "write", Path: f.Name(), Err: err}
	}
	return nil
}
