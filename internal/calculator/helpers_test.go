package calculator

import (
	"math"
	"time"

	"MarketScope/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// wavySeries builds n deterministic bars with a drifting sine close.
func wavySeries(n int) *model.Series {
	bars := make([]model.OHLCV, n)
	for i := 0; i < n; i++ {
		c := 100 + 10*math.Sin(float64(i)/7) + 0.1*float64(i)
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   c - 0.3,
			High:   c + 1 + float64(i%3)*0.5,
			Low:    c - 1 - float64(i%4)*0.25,
			Close:  c,
			Volume: int64(1000 + i*10),
		}
	}
	return &model.Series{Symbol: "TEST", Market: model.MarketGlobal, Bars: bars}
}

// closesSeries builds bars whose high/low hug the given closes.
func closesSeries(closes []float64) *model.Series {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   day0.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 100,
		}
	}
	return &model.Series{Symbol: "TEST", Market: model.MarketGlobal, Bars: bars}
}

func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
