// Package fstore implements the flat-file persistence discipline shared by
// the user and submission stores: every mutation reads the whole backing
// collection, changes it in memory, and writes the whole collection back.
// Writes go to a temporary file in the same directory followed by a rename,
// so a reader in the same process never observes a partial file. Concurrent
// writers in other processes are not coordinated; each store serializes its
// own mutations behind a mutex.
package fstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnavailable reports that the backing medium could not be read or
// written. Callers surface it as a retryable server-side failure.
var ErrUnavailable = errors.New("storage unavailable")

// ReadJSON decodes the collection at path into out. A missing file is not an
// error: out is left untouched so an empty collection stays empty.
func ReadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", ErrUnavailable, filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, filepath.Base(path), err)
	}
	return nil
}

// WriteJSON encodes v and atomically replaces the collection at path,
// creating parent directories on first use.
func WriteJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrUnavailable, dir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrUnavailable, filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", ErrUnavailable, filepath.Base(path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrUnavailable, filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", ErrUnavailable, filepath.Base(path), err)
	}
	return nil
}
