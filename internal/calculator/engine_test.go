package calculator

import (
	"testing"

	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/model"
)

func TestCompute_MovingAveragesMatchTrailingMean(t *testing.T) {
	s := wavySeries(260)
	frame := Compute(s)
	closes := s.Closes()

	require.Equal(t, len(s.Bars), frame.Len())

	tests := []struct {
		name   string
		period int
		field  func(p model.IndicatorPoint) (float64, bool)
	}{
		{"MA20", 20, func(p model.IndicatorPoint) (float64, bool) { return p.MA20.Float64, p.MA20.Valid }},
		{"MA50", 50, func(p model.IndicatorPoint) (float64, bool) { return p.MA50.Float64, p.MA50.Valid }},
		{"MA200", 200, func(p model.IndicatorPoint) (float64, bool) { return p.MA200.Float64, p.MA200.Valid }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := talib.Sma(closes, tt.period)
			for i, p := range frame.Points {
				v, ok := tt.field(p)
				if i < tt.period-1 {
					assert.False(t, ok, "index %d should be null", i)
					continue
				}
				require.True(t, ok, "index %d should be defined", i)

				sum := 0.0
				for j := i - tt.period + 1; j <= i; j++ {
					sum += closes[j]
				}
				assert.InDelta(t, sum/float64(tt.period), v, 1e-9)
				assert.InDelta(t, oracle[i], v, 1e-9)
			}
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	s := wavySeries(240)
	before := s.Clone()

	a := Compute(s)
	b := Compute(s)

	assert.Equal(t, a, b)
	assert.Equal(t, before.Bars, s.Bars, "input series must not be modified")
}

func TestCompute_LaggingSpanPullsFutureCloses(t *testing.T) {
	s := wavySeries(120)
	frame := Compute(s)
	n := frame.Len()

	for i := 0; i < n; i++ {
		lag := frame.Points[i].IchimokuLagging
		if i+model.IchimokuShift < n {
			require.True(t, lag.Valid)
			assert.Equal(t, s.Bars[i+model.IchimokuShift].Close, lag.Float64)
		} else {
			assert.False(t, lag.Valid, "index %d should be null", i)
		}
	}
	assert.Equal(t, n-model.IchimokuShift-1, frame.LastLaggingIndex())
}

func TestCompute_StochasticBounded(t *testing.T) {
	frame := Compute(wavySeries(300))
	seen := 0
	for _, p := range frame.Points {
		if p.StochK.Valid {
			seen++
			assert.GreaterOrEqual(t, p.StochK.Float64, 0.0)
			assert.LessOrEqual(t, p.StochK.Float64, 100.0)
		}
		if p.StochD.Valid {
			assert.GreaterOrEqual(t, p.StochD.Float64, 0.0)
			assert.LessOrEqual(t, p.StochD.Float64, 100.0)
		}
	}
	assert.NotZero(t, seen)
}

func TestCompute_ShortSeriesLeavesLateFieldsNull(t *testing.T) {
	frame := Compute(wavySeries(30))
	latest := frame.Latest()

	assert.True(t, latest.MA20.Valid)
	assert.False(t, latest.MA50.Valid)
	assert.False(t, latest.MA200.Valid)
	assert.True(t, latest.RSI.Valid)
	assert.True(t, latest.MACD.Valid)
	assert.False(t, latest.MACDSignal.Valid)
	assert.False(t, latest.IchimokuSpanB.Valid)
	assert.Equal(t, -1, Compute(wavySeries(26)).LastLaggingIndex())
}

func TestCompute_EmptySeries(t *testing.T) {
	frame := Compute(&model.Series{Symbol: "EMPTY"})
	assert.Equal(t, 0, frame.Len())
	assert.Equal(t, -1, frame.LastLaggingIndex())
}

func TestCompute_FirstValidIndexes(t *testing.T) {
	frame := Compute(wavySeries(120))

	firstValid := func(get func(p model.IndicatorPoint) bool) int {
		for i, p := range frame.Points {
			if get(p) {
				return i
			}
		}
		return -1
	}

	assert.Equal(t, 13, firstValid(func(p model.IndicatorPoint) bool { return p.RSI.Valid }))
	assert.Equal(t, 18, firstValid(func(p model.IndicatorPoint) bool { return p.RSISignal.Valid }))
	assert.Equal(t, 25, firstValid(func(p model.IndicatorPoint) bool { return p.MACD.Valid }))
	assert.Equal(t, 33, firstValid(func(p model.IndicatorPoint) bool { return p.MACDSignal.Valid }))
	assert.Equal(t, 33, firstValid(func(p model.IndicatorPoint) bool { return p.MACDHist.Valid }))
	assert.Equal(t, 17, firstValid(func(p model.IndicatorPoint) bool { return p.BBMiddle.Valid }))
	assert.Equal(t, 14, firstValid(func(p model.IndicatorPoint) bool { return p.StochK.Valid }))
	assert.Equal(t, 19, firstValid(func(p model.IndicatorPoint) bool { return p.StochD.Valid }))
	assert.Equal(t, 8, firstValid(func(p model.IndicatorPoint) bool { return p.IchimokuConversion.Valid }))
	assert.Equal(t, 25, firstValid(func(p model.IndicatorPoint) bool { return p.IchimokuBase.Valid }))
	assert.Equal(t, 25, firstValid(func(p model.IndicatorPoint) bool { return p.IchimokuSpanA.Valid }))
	assert.Equal(t, 51, firstValid(func(p model.IndicatorPoint) bool { return p.IchimokuSpanB.Valid }))
}
