package calculator

import "github.com/shopspring/decimal"

// Round2 rounds v to two decimals, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Change computes the delta and percent change of current against previous,
// both rounded to two decimals. Percent is 0 when previous is not positive.
func Change(current, previous float64) (delta, percent float64) {
	cur := decimal.NewFromFloat(current)
	prev := decimal.NewFromFloat(previous)
	d := cur.Sub(prev)

	delta, _ = d.Round(2).Float64()
	if !prev.IsPositive() {
		return delta, 0
	}
	percent, _ = d.Div(prev).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return delta, percent
}
