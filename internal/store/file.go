package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"BCVMonitor/internal/model"
)

// FileStore keeps the entry in a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Load reads the entry from disk. A missing file is an empty slot.
func (f *FileStore) Load(_ context.Context) (*model.CacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return decode(data)
}

// Save writes the entry through a temp file so readers never see half a document.
func (f *FileStore) Save(_ context.Context, entry *model.CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Ping checks that the directory holding the file exists.
func (f *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(f.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
