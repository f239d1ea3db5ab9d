package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache persists extracted page text so unchanged documents are not
// re-extracted between runs. It stores text only, never statistics.
type Cache interface {
	Close() error

	// GetPages returns the cached pages for key. A key whose size or
	// modification time differs from the stored one is a miss.
	GetPages(ctx context.Context, key Key) ([]string, bool, error)
	PutPages(ctx context.Context, key Key, pages []string) error
	Delete(ctx context.Context, path string) error
	Len(ctx context.Context) (int, error)
}

// Key identifies one version of a file on disk
type Key struct {
	Path    string // absolute path
	Size    int64
	ModTime time.Time
}

// KeyFor stats path and builds its cache key.
func KeyFor(path string) (Key, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Key{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Key{}, err
	}
	return Key{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
	}, nil
}

// Matches reports whether other describes the same file version.
func (k Key) Matches(other Key) bool {
	return k.Path == other.Path && k.Size == other.Size && k.ModTime.Equal(other.ModTime)
}
