package calculator

import (
	"errors"
	"math"

	"github.com/guregu/null/v6"

	"MarketScope/internal/model"
)

// RecentHigh scans the most recent n bars and returns the highest high.
func RecentHigh(bars []model.OHLCV, n int) (float64, error) {
	if n <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(bars) < n {
		return 0, errors.New("not enough bars for range calculation")
	}
	high := math.Inf(-1)
	for i := len(bars) - n; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
	}
	return high, nil
}

// MeanVolume averages volume over bars[from:to].
func MeanVolume(bars []model.OHLCV, from, to int) (float64, error) {
	if from < 0 || to > len(bars) || from >= to {
		return 0, errors.New("volume window out of range")
	}
	var sum float64
	for i := from; i < to; i++ {
		sum += float64(bars[i].Volume)
	}
	return sum / float64(to-from), nil
}

// PercentChange returns (to-from)/from in percent.
func PercentChange(from, to float64) (float64, error) {
	if from == 0 {
		return 0, errors.New("base value is zero")
	}
	return (to - from) / from * 100, nil
}

// rollingMax returns the highest value of each trailing window.
func rollingMax(values []float64, period int) []null.Float {
	return rollingExtreme(values, period, func(a, b float64) bool { return a > b })
}

// rollingMin returns the lowest value of each trailing window.
func rollingMin(values []float64, period int) []null.Float {
	return rollingExtreme(values, period, func(a, b float64) bool { return a < b })
}

func rollingExtreme(values []float64, period int, better func(a, b float64) bool) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		best := values[i-period+1]
		for j := i - period + 2; j <= i; j++ {
			if better(values[j], best) {
				best = values[j]
			}
		}
		out[i] = null.FloatFrom(best)
	}
	return out
}

func extractHighs(bars []model.OHLCV) []float64 {
	highs := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
	}
	return highs
}

func extractLows(bars []model.OHLCV) []float64 {
	lows := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
	}
	return lows
}
