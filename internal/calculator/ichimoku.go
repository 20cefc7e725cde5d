package calculator

import (
	"github.com/guregu/null/v6"

	"MarketScope/internal/model"
)

// IchimokuSeries holds the five Ichimoku lines, index-aligned with the input.
type IchimokuSeries struct {
	Conversion []null.Float
	Base       []null.Float
	SpanA      []null.Float
	SpanB      []null.Float
	Lagging    []null.Float
}

// Ichimoku computes the conversion, base and span lines from midpoints of
// rolling high/low windows. Spans stay on the bar they were computed from.
// The lagging span pulls closes backward: Lagging[i] = close[i+shift].
func Ichimoku(bars []model.OHLCV, convPeriod, basePeriod, spanBPeriod, shift int) IchimokuSeries {
	highs := extractHighs(bars)
	lows := extractLows(bars)

	conv := midpoint(rollingMax(highs, convPeriod), rollingMin(lows, convPeriod))
	base := midpoint(rollingMax(highs, basePeriod), rollingMin(lows, basePeriod))
	spanA := midpoint(conv, base)
	spanB := midpoint(rollingMax(highs, spanBPeriod), rollingMin(lows, spanBPeriod))

	lagging := make([]null.Float, len(bars))
	for i := 0; i+shift < len(bars); i++ {
		lagging[i] = null.FloatFrom(bars[i+shift].Close)
	}

	return IchimokuSeries{
		Conversion: conv,
		Base:       base,
		SpanA:      spanA,
		SpanB:      spanB,
		Lagging:    lagging,
	}
}

func midpoint(a, b []null.Float) []null.Float {
	out := make([]null.Float, len(a))
	for i := range a {
		if a[i].Valid && b[i].Valid {
			out[i] = null.FloatFrom((a[i].Float64 + b[i].Float64) / 2)
		}
	}
	return out
}

// Cloud classifies every adjacent pair of points whose current spans are
// both defined: bullish when Span A >= Span B, bearish otherwise.
func Cloud(frame *model.IndicatorFrame) []model.CloudSegment {
	var segments []model.CloudSegment
	for i := 1; i < len(frame.Points); i++ {
		cur := frame.Points[i]
		if !cur.IchimokuSpanA.Valid || !cur.IchimokuSpanB.Valid {
			continue
		}
		segments = append(segments, model.CloudSegment{
			From:    frame.Points[i-1].Time,
			To:      cur.Time,
			Bullish: cur.IchimokuSpanA.Float64 >= cur.IchimokuSpanB.Float64,
		})
	}
	return segments
}
