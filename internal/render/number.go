package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is shown instead of a zero amount.
const Placeholder = "--"

// FormatNumber renders v with two decimals in the Venezuelan convention,
// "1.234,56". Zero renders as the placeholder.
func FormatNumber(v float64) string {
	if v == 0 {
		return Placeholder
	}
	return formatFixed(v)
}

// formatFixed is FormatNumber without the zero placeholder.
func formatFixed(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
