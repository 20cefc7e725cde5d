package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// IchimokuShift is how many bars the lagging span is pulled back.
const IchimokuShift = 26

// IndicatorPoint is one bar plus every derived field. A field is invalid
// (null) when its window has not filled yet.
//
// IchimokuLagging is non-causal: IchimokuLagging[i] holds close[i+26], so the
// last 26 points never carry a value. SpanA and SpanB are left aligned to the
// bar they were computed on rather than projected forward.
type IndicatorPoint struct {
	OHLCV

	MA20  null.Float `json:"ma20"`
	MA50  null.Float `json:"ma50"`
	MA200 null.Float `json:"ma200"`

	RSI       null.Float `json:"rsi"`
	RSISignal null.Float `json:"rsi_signal"`

	MACD       null.Float `json:"macd"`
	MACDSignal null.Float `json:"macd_signal"`
	MACDHist   null.Float `json:"macd_hist"`

	BBUpper  null.Float `json:"bb_upper"`
	BBMiddle null.Float `json:"bb_middle"`
	BBLower  null.Float `json:"bb_lower"`

	StochK null.Float `json:"stoch_k"`
	StochD null.Float `json:"stoch_d"`

	IchimokuConversion null.Float `json:"ichimoku_conversion"`
	IchimokuBase       null.Float `json:"ichimoku_base"`
	IchimokuSpanA      null.Float `json:"ichimoku_span_a"`
	IchimokuSpanB      null.Float `json:"ichimoku_span_b"`
	IchimokuLagging    null.Float `json:"ichimoku_lagging"`
}

// IndicatorFrame is a Series extended with derived fields per bar.
type IndicatorFrame struct {
	Symbol string           `json:"symbol"`
	Market Market           `json:"market"`
	Points []IndicatorPoint `json:"points"`
}

// Len returns the number of points.
func (f *IndicatorFrame) Len() int { return len(f.Points) }

// Latest returns the most recent point. The frame must not be empty.
func (f *IndicatorFrame) Latest() IndicatorPoint { return f.Points[len(f.Points)-1] }

// LastLaggingIndex returns the newest index whose lagging span is defined,
// or -1 when the frame is too short. That point pairs today's close with the
// bands of 26 bars ago.
func (f *IndicatorFrame) LastLaggingIndex() int {
	for i := len(f.Points) - 1; i >= 0; i-- {
		if f.Points[i].IchimokuLagging.Valid {
			return i
		}
	}
	return -1
}

// CloudSegment is the stretch of cloud between two adjacent bars.
type CloudSegment struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Bullish bool      `json:"bullish"`
}
