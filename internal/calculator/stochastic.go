package calculator

import (
	"github.com/guregu/null/v6"

	"MarketScope/internal/model"
)

// neutralK is used when the lookback range is flat and %K is undefined.
const neutralK = 50.0

// SlowStochastic computes raw %K over period bars, smooths it with a kSmooth
// SMA into %K and smooths that with a dSmooth SMA into %D. Values are clamped
// to [0, 100] so a close printed outside its own high/low cannot escape the range.
func SlowStochastic(bars []model.OHLCV, period, kSmooth, dSmooth int) (k, d []null.Float) {
	highest := rollingMax(extractHighs(bars), period)
	lowest := rollingMin(extractLows(bars), period)

	raw := make([]null.Float, len(bars))
	for i, b := range bars {
		if !highest[i].Valid || !lowest[i].Valid {
			continue
		}
		span := highest[i].Float64 - lowest[i].Float64
		if span == 0 {
			raw[i] = null.FloatFrom(neutralK)
			continue
		}
		raw[i] = null.FloatFrom(clamp((b.Close-lowest[i].Float64)/span*100, 0, 100))
	}

	k = rollingMean(raw, kSmooth)
	d = rollingMean(k, dSmooth)
	return k, d
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
