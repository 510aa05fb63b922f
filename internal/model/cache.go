package model

import "time"

// CacheKey is the single slot every cache backend writes to.
const CacheKey = "bcv_cache"

// CacheEntry is the persisted last-known record.
type CacheEntry struct {
	Data      Record `json:"data"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// NewCacheEntry stamps rec with t.
func NewCacheEntry(rec Record, t time.Time) *CacheEntry {
	return &CacheEntry{Data: rec, Timestamp: t.UnixMilli()}
}

// StoredAt returns the entry timestamp as a time.
func (e *CacheEntry) StoredAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Age returns how old the entry is at now.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt())
}
