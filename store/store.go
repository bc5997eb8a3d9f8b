// Package store persists the remembered account and player settings
// under the user's configuration directory. Stored passwords are
// sealed with a machine-local key so the credentials file alone does
// not leak them.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDir = "iptv-player"

// Store reads and writes the player's persisted state in one
// directory.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating it if needed. An empty
// dir selects the platform's per-user configuration directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("store: locate config dir: %w", err)
		}
		dir = filepath.Join(base, appDir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
