package normalizer

import "BCVMonitor/internal/model"

// Baseline supplies the previous rate a fresh rate is compared against.
type Baseline interface {
	Previous(code model.Code) float64
}

// FixedBaseline serves the compiled-in constants.
type FixedBaseline map[model.Code]float64

func (b FixedBaseline) Previous(code model.Code) float64 { return b[code] }

// LastRecordBaseline prefers the price of the last known record and falls
// back to Fixed for codes the record has no price for.
type LastRecordBaseline struct {
	Last  func() *model.Record
	Fixed Baseline
}

func (b *LastRecordBaseline) Previous(code model.Code) float64 {
	if b.Last != nil {
		if rec := b.Last(); rec != nil {
			if p := rec.Quote(code).Price; p > 0 {
				return p
			}
		}
	}
	if b.Fixed == nil {
		return DefaultPrevious[code]
	}
	return b.Fixed.Previous(code)
}
