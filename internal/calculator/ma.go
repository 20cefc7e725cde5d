package calculator

import (
	"errors"

	"github.com/guregu/null/v6"

	"MarketScope/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries returns the trailing simple moving average at every index.
// The first period-1 entries are null.
func SMASeries(prices []float64, period int) []null.Float {
	return rollingMean(valid(prices), period)
}

// rollingMean averages each trailing window. A window holding any null
// yields null.
func rollingMean(values []null.Float, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if !values[j].Valid {
				ok = false
				break
			}
			sum += values[j].Float64
		}
		if ok {
			out[i] = null.FloatFrom(sum / float64(period))
		}
	}
	return out
}

// emaSeries is a recursive exponential average with alpha = 2/(period+1).
// It seeds on the first non-null input and reports a value once period
// inputs have been seen. Nulls after the seed leave the state unchanged.
func emaSeries(values []null.Float, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	var ema float64
	seen := 0
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if seen == 0 {
			ema = v.Float64
		} else {
			ema = alpha*v.Float64 + (1-alpha)*ema
		}
		seen++
		if seen >= period {
			out[i] = null.FloatFrom(ema)
		}
	}
	return out
}

func valid(values []float64) []null.Float {
	out := make([]null.Float, len(values))
	for i, v := range values {
		out[i] = null.FloatFrom(v)
	}
	return out
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
