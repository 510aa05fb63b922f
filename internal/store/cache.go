package store

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/model"
)

// DefaultTTL is how long a cached entry is served without refetching.
const DefaultTTL = 10 * time.Minute

// Cache applies the freshness rule on top of a Store.
type Cache struct {
	Store  Store
	TTL    time.Duration
	Now    func() time.Time
	Logger logrus.FieldLogger
}

// NewCache wraps s with the given TTL (DefaultTTL when zero).
func NewCache(s Store, ttl time.Duration, logger logrus.FieldLogger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cache{Store: s, TTL: ttl, Now: time.Now, Logger: logger}
}

// Fresh reports whether the stored entry is younger than the TTL. A stale
// entry is still returned alongside false. Unreadable or corrupt entries
// count as a miss.
func (c *Cache) Fresh(ctx context.Context) (*model.CacheEntry, bool) {
	entry := c.Last(ctx)
	if entry == nil {
		return nil, false
	}
	if entry.Age(c.Now()) >= c.TTL {
		return entry, false
	}
	return entry, true
}

// Last returns the stored entry regardless of age, or nil.
func (c *Cache) Last(ctx context.Context) *model.CacheEntry {
	entry, err := c.Store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrCorruptEntry) {
			c.Logger.Warnf("ignoring cached entry: %v", err)
		} else {
			c.Logger.Errorf("read cache: %v", err)
		}
		return nil
	}
	return entry
}

// Put stamps rec with the current time and stores it.
func (c *Cache) Put(ctx context.Context, rec model.Record) error {
	return c.Store.Save(ctx, model.NewCacheEntry(rec, c.Now()))
}
