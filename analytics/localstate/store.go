// Package localstate is a file-backed implementation of the analytics
// StateStore: one small JSON file per key under a device-local
// directory.
package localstate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store persists string values under a directory, one file per key.
type Store struct {
	dir string
}

// DefaultDir returns the per-user state directory,
// ~/.prime-analytics by default.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prime-analytics"), nil
}

// New creates the directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Get returns the stored value, or "" when the key has never been set.
func (s *Store) Get(key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(b), nil
}

// Set writes the value, replacing any previous one.
func (s *Store) Set(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o644)
}

func (s *Store) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("state key is required")
	}
	// Keys are flat identifiers; path separators would escape the dir.
	if strings.ContainsAny(key, `/\`) {
		return "", errors.New("state key must not contain path separators")
	}
	return filepath.Join(s.dir, key+".json"), nil
}
