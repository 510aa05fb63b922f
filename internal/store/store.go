package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"BCVMonitor/internal/model"
)

// ErrCorruptEntry is returned when the stored slot cannot be decoded into a
// current cache entry. Callers treat it as a miss.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// Store persists the single last-known cache entry.
// Load returns (nil, nil) when the slot is empty.
type Store interface {
	Load(ctx context.Context) (*model.CacheEntry, error)
	Save(ctx context.Context, entry *model.CacheEntry) error
	Ping(ctx context.Context) error
	Close() error
}

func encode(entry *model.CacheEntry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	return data, nil
}

// decode rejects anything that is not a complete entry, including documents
// written in the older flat per-currency layout.
func decode(data []byte) (*model.CacheEntry, error) {
	var entry model.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	if entry.Timestamp <= 0 {
		return nil, fmt.Errorf("%w: missing timestamp", ErrCorruptEntry)
	}
	if err := entry.Data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return &entry, nil
}
