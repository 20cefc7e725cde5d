package calculator

import "github.com/guregu/null/v6"

// MACDSeries holds the three MACD lines, index-aligned with the input.
type MACDSeries struct {
	MACD   []null.Float
	Signal []null.Float
	Hist   []null.Float
}

// MACD computes EMA(fast)-EMA(slow) of closes, its EMA(signal) and the
// difference between the two.
func MACD(closes []float64, fast, slow, signal int) MACDSeries {
	in := valid(closes)
	emaFast := emaSeries(in, fast)
	emaSlow := emaSeries(in, slow)

	line := make([]null.Float, len(closes))
	for i := range closes {
		if emaFast[i].Valid && emaSlow[i].Valid {
			line[i] = null.FloatFrom(emaFast[i].Float64 - emaSlow[i].Float64)
		}
	}

	sig := emaSeries(line, signal)
	hist := make([]null.Float, len(closes))
	for i := range closes {
		if line[i].Valid && sig[i].Valid {
			hist[i] = null.FloatFrom(line[i].Float64 - sig[i].Float64)
		}
	}
	return MACDSeries{MACD: line, Signal: sig, Hist: hist}
}
