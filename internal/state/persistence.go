package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/gridcycle/internal/logging"
)

// DefaultPath is where the state file lives unless overridden
const DefaultPath = "/tmp/yabai-rectangle-grid"

// ReadFrom reads and parses the state file at path.
// A missing or empty file yields an empty store and no error; unreadable or
// malformed content is returned as an error alongside an empty store.
func ReadFrom(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return NewStore(), fmt.Errorf("failed to read state file: %w", err)
	}

	store, err := Parse(string(data))
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return NewStore(), nil
		}
		return NewStore(), fmt.Errorf("failed to parse state file: %w", err)
	}
	return store, nil
}

// LoadFrom reads the state file at path. Any problem yields an empty store:
// a broken state file must never stop a window from moving.
func LoadFrom(path string) Store {
	store, err := ReadFrom(path)
	if err != nil {
		logging.Debug().Err(err).Str("path", path).Msg("discarding state file")
	}
	return store
}

// SaveTo writes the store to path, replacing the previous contents.
// There is no locking; overlapping invocations can lose updates.
func SaveTo(path string, s Store) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(Serialize(s)), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Reset overwrites the state file at path with an empty store
func Reset(path string) error {
	return SaveTo(path, NewStore())
}
