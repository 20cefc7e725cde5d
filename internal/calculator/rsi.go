package calculator

import "github.com/guregu/null/v6"

// RSISeries computes Wilder's RSI at every index.
//
// Smoothing starts on the first bar (whose change counts as zero) and runs
// recursively, so the first period-1 entries are null. When the smoothed loss
// is zero the RSI is 100.
func RSISeries(closes []float64, period int) []null.Float {
	out := make([]null.Float, len(closes))
	if period <= 0 {
		return out
	}

	var avgGain, avgLoss float64
	for i := range closes {
		var gain, loss float64
		if i > 0 {
			change := closes[i] - closes[i-1]
			if change > 0 {
				gain = change
			} else {
				loss = -change
			}
		}

		if i == 0 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain = (avgGain*float64(period-1) + gain) / float64(period)
			avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		}

		if i < period-1 {
			continue
		}
		if avgLoss == 0 {
			out[i] = null.FloatFrom(100)
			continue
		}
		rs := avgGain / avgLoss
		out[i] = null.FloatFrom(100.0 - 100.0/(1.0+rs))
	}
	return out
}
