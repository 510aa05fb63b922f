package model

import (
	"fmt"
	"time"
)

// Direction is the sign of a quote's change against its baseline.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Symbols are emitted as escaped text, the form existing dashboards compare against.
const (
	SymbolUp   = `\u25b2`
	SymbolDown = `\u25bc`
)

const (
	ColorGreen = "green"
	ColorRed   = "red"
)

// Color returns the display color for the direction.
func (d Direction) Color() string {
	if d == Down {
		return ColorRed
	}
	return ColorGreen
}

// Symbol returns the escaped arrow for the direction.
func (d Direction) Symbol() string {
	if d == Down {
		return SymbolDown
	}
	return SymbolUp
}

// DirectionOf maps a change to a direction; zero counts as up.
func DirectionOf(change float64) Direction {
	if change < 0 {
		return Down
	}
	return Up
}

// Quote is one currency card of a record.
type Quote struct {
	Price      float64 `json:"price"`
	PriceOld   float64 `json:"price_old"`
	Change     float64 `json:"change"`
	Percent    float64 `json:"percent"`
	Color      string  `json:"color"`
	Symbol     string  `json:"symbol"`
	Title      string  `json:"title"`
	Image      string  `json:"image"`
	LastUpdate string  `json:"last_update"`
}

// Direction derives the direction from the quote's color.
func (q Quote) Direction() Direction {
	if q.Color == ColorRed {
		return Down
	}
	return Up
}

// Datetime is the human readable observation time of a record.
type Datetime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Monitors carries exactly the five quotes, in identity order.
type Monitors struct {
	EUR Quote `json:"eur"`
	CNY Quote `json:"cny"`
	TRY Quote `json:"try"`
	RUB Quote `json:"rub"`
	USD Quote `json:"usd"`
}

// Get returns the quote for code.
func (m *Monitors) Get(code Code) Quote {
	if p := m.slot(code); p != nil {
		return *p
	}
	return Quote{}
}

// Set replaces the quote for code. Unknown codes are ignored.
func (m *Monitors) Set(code Code, q Quote) {
	if p := m.slot(code); p != nil {
		*p = q
	}
}

func (m *Monitors) slot(code Code) *Quote {
	switch code {
	case EUR:
		return &m.EUR
	case CNY:
		return &m.CNY
	case TRY:
		return &m.TRY
	case RUB:
		return &m.RUB
	case USD:
		return &m.USD
	}
	return nil
}

// Record is the normalized document served by the backend and cached by dashboards.
type Record struct {
	Datetime   Datetime  `json:"datetime"`
	Monitors   Monitors  `json:"monitors"`
	ObservedAt time.Time `json:"-"`
}

// Quote returns the quote for code.
func (r *Record) Quote(code Code) Quote { return r.Monitors.Get(code) }

// Quotes returns the five quotes in identity order.
func (r *Record) Quotes() []Quote {
	out := make([]Quote, 0, len(Codes))
	for _, c := range Codes {
		out = append(out, r.Monitors.Get(c))
	}
	return out
}

// HasData reports whether any quote carries a positive price.
func (r *Record) HasData() bool {
	for _, q := range r.Quotes() {
		if q.Price > 0 {
			return true
		}
	}
	return false
}

// Validate rejects documents that do not carry the five titled monitors,
// such as entries written by older dashboards.
func (r *Record) Validate() error {
	for _, c := range Codes {
		q := r.Monitors.Get(c)
		if q.Title == "" {
			return fmt.Errorf("monitor %q missing", c)
		}
		if q.Price < 0 {
			return fmt.Errorf("monitor %q: negative price %v", c, q.Price)
		}
	}
	return nil
}
