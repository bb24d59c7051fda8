// Package cache stores rendered artifacts keyed by a content hash.
//
// The CLI uses it to skip Graphviz when a map's DOT source has not changed
// since the last run. Entries live as JSON files below the user cache
// directory and may carry an expiry.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

const appName = "mindlayout"

// Dir returns the default cache directory,
// $XDG_CACHE_HOME/mindlayout or ~/.cache/mindlayout.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
