package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"BCVMonitor/internal/model"
	"BCVMonitor/internal/normalizer"
)

// Arrow glyphs shown on the cards.
const (
	ArrowUp      = "▲"
	ArrowDown    = "▼"
	ArrowUnknown = "●"
)

// Card is one quote ready for display.
type Card struct {
	Code     string
	Title    string
	Image    string
	Color    string
	Arrow    string
	Price    string
	Label    string
	Change   string
	Previous string
}

// Arrow maps the escaped symbol stored in a quote to its glyph.
func Arrow(symbol string) string {
	switch symbol {
	case model.SymbolUp:
		return ArrowUp
	case model.SymbolDown:
		return ArrowDown
	default:
		return ArrowUnknown
	}
}

// ChangeLine renders "+8,32 (5.27%)". The amount uses the local separators
// while the percent keeps a plain decimal point. The sign is only added for rises.
func ChangeLine(q model.Quote) string {
	sign := ""
	if q.Change > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s (%s%%)", sign, FormatNumber(q.Change), decimal.NewFromFloat(q.Percent).StringFixed(2))
}

// Cards returns the five cards in display order.
func Cards(rec *model.Record) []Card {
	if rec == nil {
		return nil
	}
	cards := make([]Card, 0, len(model.Codes))
	for _, c := range model.Codes {
		q := rec.Quote(c)
		cards = append(cards, Card{
			Code:     c.Upper(),
			Title:    q.Title,
			Image:    q.Image,
			Color:    q.Color,
			Arrow:    Arrow(q.Symbol),
			Price:    FormatNumber(q.Price),
			Label:    "VES por " + c.Upper(),
			Change:   ChangeLine(q),
			Previous: FormatNumber(q.PriceOld),
		})
	}
	return cards
}

// LastUpdate renders the "Última actualización" line from the record's own
// datetime, or from at when the record has none.
func LastUpdate(rec *model.Record, at time.Time) string {
	if rec != nil && rec.Datetime.Date != "" {
		return fmt.Sprintf("Última actualización: %s, %s", rec.Datetime.Date, rec.Datetime.Time)
	}
	if at.IsZero() {
		return ""
	}
	t := at.In(normalizer.Caracas)
	date := strings.SplitN(normalizer.LongDate(t), ", ", 2)[1]
	return fmt.Sprintf("Última actualización: %s, %s", date, t.Format("15:04"))
}
