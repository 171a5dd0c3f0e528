package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage keys. The names carry a version suffix so a future breaking
// change to a record shape can move to a fresh key instead of migrating
// in place.
const (
	KeyUsers    = "roamcar_users_v1"
	KeySession  = "roamcar_session_v1"
	KeyCars     = "roamcar_cars_v1"
	KeyBookings = "roamcar_bookings_v1"
)

// KV is a directory-backed key-value store. Each key maps to one JSON file
// inside the directory.
type KV struct {
	dir string
}

// OpenKV opens (creating if needed) the key-value directory at dir.
func OpenKV(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &KV{dir: dir}, nil
}

// Dir returns the backing directory path.
func (kv *KV) Dir() string {
	return kv.dir
}

// Get returns the raw record stored under key. The second return value
// reports whether the key exists.
func (kv *KV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(kv.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the record stored under key. The write goes through a
// temporary file and a rename so a crash never leaves a half-written
// record behind.
func (kv *KV) Set(key string, data []byte) error {
	tmp, err := os.CreateTemp(kv.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for key %q: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for key %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), kv.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace key %q: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key. Deleting an absent key is
// not an error.
func (kv *KV) Delete(key string) error {
	if err := os.Remove(kv.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (kv *KV) path(key string) string {
	return filepath.Join(kv.dir, key+".json")
}
