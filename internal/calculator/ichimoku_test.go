package calculator

import (
	"testing"

	talib "github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/model"
)

func TestIchimoku_LinesFromRollingMidpoints(t *testing.T) {
	s := wavySeries(100)
	highs := extractHighs(s.Bars)
	lows := extractLows(s.Bars)
	ichi := Ichimoku(s.Bars, 9, 26, 52, 26)

	hi9, lo9 := talib.Max(highs, 9), talib.Min(lows, 9)
	hi26, lo26 := talib.Max(highs, 26), talib.Min(lows, 26)
	hi52, lo52 := talib.Max(highs, 52), talib.Min(lows, 52)

	for i := 51; i < 100; i++ {
		conv := (hi9[i] + lo9[i]) / 2
		base := (hi26[i] + lo26[i]) / 2
		assert.InDelta(t, conv, ichi.Conversion[i].Float64, 1e-9)
		assert.InDelta(t, base, ichi.Base[i].Float64, 1e-9)
		assert.InDelta(t, (conv+base)/2, ichi.SpanA[i].Float64, 1e-9)
		assert.InDelta(t, (hi52[i]+lo52[i])/2, ichi.SpanB[i].Float64, 1e-9)
	}
}

func TestCloud_PairwiseClassification(t *testing.T) {
	frame := &model.IndicatorFrame{Points: []model.IndicatorPoint{
		point(0, 0, 0, false),
		point(1, 10, 9, true),
		point(2, 9, 9, true),
		point(3, 8, 9, true),
		point(4, 0, 0, false),
		point(5, 12, 11, true),
	}}

	segments := Cloud(frame)
	require.Len(t, segments, 4)
	assert.True(t, segments[0].Bullish)
	assert.True(t, segments[1].Bullish, "equal spans count as bullish")
	assert.False(t, segments[2].Bullish)
	assert.Equal(t, day0.AddDate(0, 0, 4), segments[3].From)
	assert.True(t, segments[3].Bullish)
}

func point(i int, a, b float64, ok bool) model.IndicatorPoint {
	p := model.IndicatorPoint{OHLCV: model.OHLCV{Time: day0.AddDate(0, 0, i)}}
	if ok {
		p.IchimokuSpanA.Float64, p.IchimokuSpanA.Valid = a, true
		p.IchimokuSpanB.Float64, p.IchimokuSpanB.Valid = b, true
	}
	return p
}

func TestSlowStochastic_FlatRangeIsNeutral(t *testing.T) {
	bars := make([]model.OHLCV, 30)
	for i := range bars {
		bars[i] = model.OHLCV{Time: day0.AddDate(0, 0, i), Open: 5, High: 5, Low: 5, Close: 5}
	}
	k, d := SlowStochastic(bars, 10, 6, 6)
	assert.InDelta(t, 50.0, k[29].Float64, 1e-9)
	assert.InDelta(t, 50.0, d[29].Float64, 1e-9)
}

func TestSlowStochastic_CloseAtHighIs100(t *testing.T) {
	s := closesSeries(linear(40, 10, 1))
	for i := range s.Bars {
		s.Bars[i].High = s.Bars[i].Close
	}
	k, d := SlowStochastic(s.Bars, 10, 6, 6)
	assert.InDelta(t, 100.0, k[39].Float64, 1e-9)
	assert.InDelta(t, 100.0, d[39].Float64, 1e-9)
}

func TestRecentHighAndVolume(t *testing.T) {
	s := wavySeries(40)

	high, err := RecentHigh(s.Bars, 20)
	require.NoError(t, err)
	for _, b := range s.Bars[20:] {
		assert.LessOrEqual(t, b.High, high)
	}
	_, err = RecentHigh(s.Bars, 41)
	assert.Error(t, err)

	mean, err := MeanVolume(s.Bars, 35, 40)
	require.NoError(t, err)
	assert.InDelta(t, float64(1000+37*10), mean, 1e-9)
	_, err = MeanVolume(s.Bars, 5, 5)
	assert.Error(t, err)

	pct, err := PercentChange(100, 110)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, pct, 1e-9)
	_, err = PercentChange(0, 1)
	assert.Error(t, err)
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, v, 1e-12)

	_, err = CalculateSMA([]float64{1}, 2)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1}, 0)
	assert.Error(t, err)
}
