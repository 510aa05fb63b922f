package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/model"
	"BCVMonitor/internal/normalizer"
)

var t0 = time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

func sampleEntry() *model.CacheEntry {
	rec := normalizer.New().Normalize(model.Rates{model.USD: 36.5, model.EUR: 40}, t0)
	return model.NewCacheEntry(rec, t0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected empty slot, got %+v", got)
	}

	first := sampleEntry()
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := sampleEntry()
	second.Timestamp += 60_000
	second.Data.Monitors.USD.Price = 37
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Timestamp != second.Timestamp {
		t.Errorf("expected last write to win, got timestamp %d", got.Timestamp)
	}
	if got.Data.Monitors != second.Data.Monitors || got.Data.Datetime != second.Data.Datetime {
		t.Errorf("record did not survive the store: %+v", got.Data)
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "cache.json")))
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"), quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, addr, "", 15)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer s.Close()
	s.client.Del(ctx, s.key)
	exerciseStore(t, s)
	s.client.Del(ctx, s.key)
}

func TestFileStore_CorruptEntry(t *testing.T) {
	tests := map[string]string{
		"not json":     "{{{",
		"legacy shape": `{"usd":{"value":36.5},"eur":{"value":40}}`,
		"no timestamp": `{"data":{"monitors":{}}}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := NewFileStore(path).Load(context.Background())
			if !errors.Is(err, ErrCorruptEntry) {
				t.Errorf("expected ErrCorruptEntry, got %v", err)
			}
		})
	}
}

func TestSQLiteStore_CorruptEntry(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"), quietLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.writeRaw(context.Background(), "garbage"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrCorruptEntry) {
		t.Errorf("expected ErrCorruptEntry, got %v", err)
	}
}
