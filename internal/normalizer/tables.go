package normalizer

import "BCVMonitor/internal/model"

// Pair is a fallback (current, previous) couple.
type Pair struct {
	Current  float64
	Previous float64
}

// DefaultPrevious is the compiled-in comparison baseline per currency.
var DefaultPrevious = map[model.Code]float64{
	model.EUR: 35.42,
	model.CNY: 4.89,
	model.TRY: 1.15,
	model.RUB: 0.38,
	model.USD: 32.15,
}

// FallbackTable replaces the whole set when a scrape yields nothing.
var FallbackTable = map[model.Code]Pair{
	model.EUR: {Current: 166.28, Previous: 157.96},
	model.CNY: {Current: 19.79, Previous: 18.80},
	model.TRY: {Current: 3.46, Previous: 3.29},
	model.RUB: {Current: 1.76, Previous: 1.67},
	model.USD: {Current: 141.88, Previous: 134.79},
}
