package screener

import (
	"fmt"

	"MarketScope/internal/model"
)

// Cascade windows and thresholds.
const (
	NewHighWindow   = 20
	MinCheapBars    = 20
	SurgeRecentBars = 5
	SurgePriorBars  = 10
	SurgeFactor     = 1.2
	TrendPeriod     = 60

	MinNewHighRatio = 0.98
	MaxNewHighRatio = 1.0
)

// TrendPaddedPeriod is loaded when the 3mo window holds fewer than
// TrendPeriod bars.
const TrendPaddedPeriod = model.Period6M

// Rules is the resolved filter set of one screening run.
type Rules struct {
	Variant         model.Variant
	NewHighRatio    float64
	VolumeSurge     bool
	Trend           bool
	LaggingBreakout bool
	RankKey         model.RankKey
}

var presets = map[model.Variant]Rules{
	model.VariantMultiFactor: {
		Variant:      model.VariantMultiFactor,
		NewHighRatio: 0.98,
		VolumeSurge:  true,
		Trend:        true,
		RankKey:      model.RankVolumeChange,
	},
	model.VariantNewHigh: {
		Variant:      model.VariantNewHigh,
		NewHighRatio: 0.99,
		Trend:        true,
		RankKey:      model.RankPriceChange,
	},
	model.VariantLaggingBreakout: {
		Variant:         model.VariantLaggingBreakout,
		NewHighRatio:    0.99,
		LaggingBreakout: true,
		RankKey:         model.RankRSI,
	},
}

// RulesFor resolves a variant preset. A non-zero ratio overrides the
// preset's new-high threshold and must lie in [0.98, 1.0].
func RulesFor(variant model.Variant, ratio float64) (Rules, error) {
	r, ok := presets[variant]
	if !ok {
		return Rules{}, fmt.Errorf("unknown screening variant %q", variant)
	}
	if ratio != 0 {
		if ratio < MinNewHighRatio || ratio > MaxNewHighRatio {
			return Rules{}, fmt.Errorf("new-high ratio %.3f outside [%.2f, %.2f]", ratio, MinNewHighRatio, MaxNewHighRatio)
		}
		r.NewHighRatio = ratio
	}
	return r, nil
}

// ParseVariant validates a variant name.
func ParseVariant(s string) (model.Variant, error) {
	v := model.Variant(s)
	if _, ok := presets[v]; !ok {
		return "", fmt.Errorf("unknown screening variant %q", s)
	}
	return v, nil
}
