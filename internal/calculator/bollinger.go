package calculator

import (
	"math"

	"github.com/guregu/null/v6"
)

// BollingerSeries holds the three bands, index-aligned with the input.
type BollingerSeries struct {
	Upper  []null.Float
	Middle []null.Float
	Lower  []null.Float
}

// Bollinger computes middle = SMA(period) and middle ± k·σ, where σ is the
// population standard deviation of the same window. A constant window has
// σ = 0 and the bands collapse onto the middle line.
func Bollinger(closes []float64, period int, k float64) BollingerSeries {
	middle := SMASeries(closes, period)
	upper := make([]null.Float, len(closes))
	lower := make([]null.Float, len(closes))

	for i := range closes {
		if !middle[i].Valid {
			continue
		}
		mean := middle[i].Float64
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		width := k * math.Sqrt(variance/float64(period))
		upper[i] = null.FloatFrom(mean + width)
		lower[i] = null.FloatFrom(mean - width)
	}
	return BollingerSeries{Upper: upper, Middle: middle, Lower: lower}
}
