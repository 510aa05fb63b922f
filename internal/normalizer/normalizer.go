// Package normalizer turns extracted rates into the fixed five-quote record.
package normalizer

import (
	"time"

	"BCVMonitor/internal/calculator"
	"BCVMonitor/internal/model"
)

// Normalizer builds records from scraped rates.
type Normalizer struct {
	Baseline Baseline
	Fallback map[model.Code]Pair
	Location *time.Location
}

// New returns a Normalizer using the compiled-in baseline and fallback table.
func New() *Normalizer {
	return &Normalizer{
		Baseline: FixedBaseline(DefaultPrevious),
		Fallback: FallbackTable,
		Location: Caracas,
	}
}

// Normalize builds the record for rates observed at now. When no code has a
// positive rate the whole set is replaced by the fallback table.
func (n *Normalizer) Normalize(rates model.Rates, now time.Time) model.Record {
	if !rates.HasData() {
		return n.FallbackRecord(now)
	}

	now = now.In(n.location())
	rec := n.skeleton(now)
	for _, c := range model.Codes {
		price := rates[c]
		if price <= 0 {
			continue
		}
		previous := n.baseline().Previous(c)
		rec.Monitors.Set(c, n.quote(c, price, previous, now))
	}
	return rec
}

// FallbackRecord returns the canned set, every quote pointing up.
func (n *Normalizer) FallbackRecord(now time.Time) model.Record {
	now = now.In(n.location())
	rec := n.skeleton(now)
	table := n.Fallback
	if table == nil {
		table = FallbackTable
	}
	for _, c := range model.Codes {
		p := table[c]
		q := n.quote(c, p.Current, p.Previous, now)
		q.Color, q.Symbol = model.Up.Color(), model.Up.Symbol()
		rec.Monitors.Set(c, q)
	}
	return rec
}

func (n *Normalizer) skeleton(now time.Time) model.Record {
	rec := model.Record{
		Datetime:   model.Datetime{Date: LongDate(now), Time: MediumTime(now)},
		ObservedAt: now,
	}
	for _, c := range model.Codes {
		rec.Monitors.Set(c, n.quote(c, 0, 0, now))
	}
	return rec
}

func (n *Normalizer) quote(c model.Code, price, previous float64, now time.Time) model.Quote {
	cur := model.Currencies[c]
	change, percent := calculator.Change(price, previous)
	dir := model.DirectionOf(change)
	return model.Quote{
		Price:      price,
		PriceOld:   previous,
		Change:     change,
		Percent:    percent,
		Color:      dir.Color(),
		Symbol:     dir.Symbol(),
		Title:      cur.Title,
		Image:      cur.Image,
		LastUpdate: LastUpdate(now),
	}
}

func (n *Normalizer) baseline() Baseline {
	if n.Baseline == nil {
		return FixedBaseline(DefaultPrevious)
	}
	return n.Baseline
}

func (n *Normalizer) location() *time.Location {
	if n.Location == nil {
		return Caracas
	}
	return n.Location
}
