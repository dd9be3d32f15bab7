package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps one JSON document per key inside a base directory.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates the base directory if needed and returns a store rooted there.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the base directory.
func (fs *FileStore) Dir() string {
	return fs.baseDir
}

// Get reads the document stored at key.
func (fs *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, &Error{Op: OpGet, Key: key, Err: err}
	}
	return data, nil
}

// Set writes the document atomically: a temp file in the same directory is renamed over the target.
func (fs *FileStore) Set(_ context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	tmp, err := os.CreateTemp(fs.baseDir, "."+key+".*.tmp")
	if err != nil {
		return &Error{Op: OpSet, Key: key, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &Error{Op: OpSet, Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &Error{Op: OpSet, Key: key, Err: err}
	}
	if err := os.Rename(tmpName, fs.path(key)); err != nil {
		os.Remove(tmpName)
		return &Error{Op: OpSet, Key: key, Err: err}
	}
	return nil
}

// Delete removes the document stored at key.
func (fs *FileStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.Remove(fs.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Op: OpDelete, Key: key, Err: err}
	}
	return nil
}

// Close is a no-op for file storage
func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.baseDir, key+".json")
}
