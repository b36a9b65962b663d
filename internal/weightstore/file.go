package weightstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileStore keeps a single weight list in a text file. The exercise argument
// is ignored.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the stored list.
func (s *FileStore) Load(_ context.Context, _ string) (List, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return List{}, ErrNotFound
	}
	if err != nil {
		return List{}, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	l, err := Decode(string(data))
	if err != nil {
		return List{}, fmt.Errorf("decoding %s: %w", s.Path, err)
	}
	return l, nil
}

// Save overwrites the file with l.
func (s *FileStore) Save(_ context.Context, _ string, l List) error {
	if err := os.WriteFile(s.Path, []byte(Encode(l)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }
