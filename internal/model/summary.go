package model

import "github.com/guregu/null/v6"

// RSIState classifies the latest RSI.
type RSIState string

const (
	RSIOverbought RSIState = "overbought"
	RSIOversold   RSIState = "oversold"
	RSINeutral    RSIState = "neutral"
	RSIUnknown    RSIState = "unknown"
)

// LaggingRelation describes where the lagging span sits against the bands and price of its bar.
type LaggingRelation string

const (
	LaggingAboveUpper  LaggingRelation = "above_bb_upper"
	LaggingBelowLower  LaggingRelation = "below_bb_lower"
	LaggingAbovePrice  LaggingRelation = "above_price"
	LaggingBelowPrice  LaggingRelation = "below_price"
	LaggingEqualPrice  LaggingRelation = "equal_price"
	LaggingUnavailable LaggingRelation = "unavailable"
)

// TechnicalSummary is a compact read of the latest bar of a frame.
type TechnicalSummary struct {
	Close     float64         `json:"close"`
	ChangePct null.Float      `json:"change_pct"`
	RSI       null.Float      `json:"rsi"`
	RSIState  RSIState        `json:"rsi_state"`
	MACDUp    null.Bool       `json:"macd_up"`
	AboveMA20 null.Bool       `json:"above_ma20"`
	Lagging   LaggingRelation `json:"lagging"`
	Bullish   null.Bool       `json:"cloud_bullish"`
	Notes     []string        `json:"notes"`
}

// AssetCard is one asset's loaded frame and summary, or the reason it has none.
type AssetCard struct {
	Category string           `json:"category,omitempty"`
	Name     string           `json:"name"`
	Symbol   string           `json:"symbol"`
	Market   Market           `json:"market"`
	Period   Period           `json:"period"`
	Frame    *IndicatorFrame  `json:"-"`
	Summary  TechnicalSummary `json:"summary"`
	Err      error            `json:"-"`
}
