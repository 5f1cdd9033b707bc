package archive

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes downloaded files to the local filesystem.
type Store struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewStore creates a Store with the default permissions.
func NewStore() *Store {
	return &Store{
		dirPerm:  0o750,
		filePerm: 0o640,
	}
}

// Save creates the parent directories of path and writes data to it.
// A failed write may leave a partial file behind.
func (s *Store) Save(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), s.dirPerm); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	if err := os.WriteFile(path, data, s.filePerm); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
