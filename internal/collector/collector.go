package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/extractor"
	"BCVMonitor/internal/model"
	"BCVMonitor/internal/normalizer"
)

// Source yields payloads; *Selector and a single Route both satisfy it.
type Source interface {
	Select(ctx context.Context) (*Payload, error)
}

// Single adapts one route into a Source.
type Single struct{ Route Route }

func (s Single) Select(ctx context.Context) (*Payload, error) { return s.Route.Attempt(ctx) }

// Lenient adapts a route into a Source that never fails: a failed attempt
// becomes an empty page, which normalizes to the fallback set.
type Lenient struct {
	Route  Route
	Logger logrus.FieldLogger
}

func (l Lenient) Select(ctx context.Context) (*Payload, error) {
	p, err := l.Route.Attempt(ctx)
	if err != nil {
		if l.Logger != nil {
			l.Logger.WithField("route", l.Route.Name()).Warnf("fetch failed: %v", err)
		}
		return &Payload{Route: l.Route.Name(), Kind: PayloadMarkup}, nil
	}
	return p, nil
}

// ErrNoRates is reported by Usable for pages without any rate.
var ErrNoRates = errors.New("no rates found in page")

// Usable rejects payloads that cannot yield a live record: markup from which
// no rate can be extracted, or a record document that does not decode into
// the five monitors.
func Usable(p *Payload) error {
	if p.Kind == PayloadRecord {
		_, err := decodeRecord(p)
		return err
	}
	if !extractor.Extract(p.Body, p.Status).HasData() {
		return ErrNoRates
	}
	return nil
}

func decodeRecord(p *Payload) (*model.Record, error) {
	var rec model.Record
	if err := json.Unmarshal(p.Body, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data format received: %w", err)
	}
	return &rec, nil
}

// Collector runs a source through extraction and normalization.
type Collector struct {
	Source     Source
	Normalizer *normalizer.Normalizer
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(src Source, n *normalizer.Normalizer, logger logrus.FieldLogger) *Collector {
	return &Collector{Source: src, Normalizer: n, Logger: logger, Now: time.Now}
}

// Collect acquires a payload and turns it into a record. A markup payload is
// always normalized, falling back to the canned set when the page yields no
// rates; a record payload must carry the five monitors.
func (c *Collector) Collect(ctx context.Context) (*model.Record, error) {
	p, err := c.Source.Select(ctx)
	if err != nil {
		return nil, err
	}

	switch p.Kind {
	case PayloadRecord:
		rec, err := decodeRecord(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Route, err)
		}
		rec.ObservedAt = c.now()
		return rec, nil
	default:
		rates := extractor.Extract(p.Body, p.Status)
		if !rates.HasData() {
			c.logger().WithFields(logrus.Fields{"route": p.Route, "status": p.Status}).
				Warn("no rates found in page, using fallback table")
		}
		rec := c.Normalizer.Normalize(rates, c.now())
		return &rec, nil
	}
}

func (c *Collector) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Collector) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
