package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileStore persists records as one TOML file per id under a base directory
type FileStore[T any] struct {
	basePath string
}

// NewFileStore creates a file store rooted at basePath, creating the
// directory if needed
func NewFileStore[T any](basePath string) (*FileStore[T], error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", basePath, err)
	}
	return &FileStore[T]{basePath: basePath}, nil
}

// FilePath returns the backing file for an id
func (s *FileStore[T]) FilePath(id string) string {
	return filepath.Join(s.basePath, id+".toml")
}

// List returns ids of all stored records in sorted order
func (s *FileStore[T]) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".toml"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Get loads and decodes the record for an id
func (s *FileStore[T]) Get(id string) (T, error) {
	var v T
	data, err := os.ReadFile(s.FilePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return v, ErrNotFound
		}
		return v, fmt.Errorf("failed to read record %s: %w", id, err)
	}
	if err := toml.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	return v, nil
}

// Put encodes and writes the record for an id
func (s *FileStore[T]) Put(id string, value T) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(value); err != nil {
		return fmt.Errorf("failed to encode record %s: %w", id, err)
	}
	if err := os.WriteFile(s.FilePath(id), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", id, err)
	}
	return nil
}

// Delete removes the record file; missing files are a no-op
func (s *FileStore[T]) Delete(id string) error {
	err := os.Remove(s.FilePath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	return nil
}
