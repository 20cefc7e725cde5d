package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// Variant names a screening preset. Exactly one is active per run.
type Variant string

const (
	VariantMultiFactor     Variant = "multi_factor"
	VariantNewHigh         Variant = "new_high"
	VariantLaggingBreakout Variant = "lagging_breakout"
)

// RankKey selects the metric survivors are sorted by, descending.
type RankKey string

const (
	RankVolumeChange RankKey = "volume_change_pct"
	RankPriceChange  RankKey = "price_change_pct"
	RankRSI          RankKey = "rsi"
)

// UniverseEntry is one (name, symbol) pair from a market directory.
type UniverseEntry struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Fundamentals is one dated row from the exchange-listing provider.
type Fundamentals struct {
	Date time.Time  `json:"date"`
	EPS  null.Float `json:"eps"`
	PER  null.Float `json:"per"`
	PBR  null.Float `json:"pbr"`
	BPS  null.Float `json:"bps"`
	DIV  null.Float `json:"div"`
}

// Candidate is a symbol that survived every active filter of a pass.
// Auxiliary metrics are null when the variant or the provider cannot supply them.
type Candidate struct {
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	Frame           *IndicatorFrame `json:"-"`
	Latest          IndicatorPoint  `json:"latest"`
	VolumeChangePct null.Float      `json:"volume_change_pct"`
	PriceChangePct  null.Float      `json:"price_change_pct"`
	EPSChangePct    null.Float      `json:"eps_change_pct"`
	RankValue       float64         `json:"rank_value"`
}

// ScreenResult is the outcome of one screening pass.
type ScreenResult struct {
	RunID        string       `json:"run_id"`
	Market       string       `json:"market"`
	Variant      Variant      `json:"variant"`
	RankKey      RankKey      `json:"rank_key"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
	Universe     int          `json:"universe"`
	UsedFallback bool         `json:"used_fallback"`
	Processed    int          `json:"processed"`
	Errors       int          `json:"errors"`
	Qualified    int          `json:"qualified"`
	Candidates   []*Candidate `json:"candidates"`
}

// Progress is reported after each candidate of a pass.
type Progress struct {
	Index  int
	Total  int
	Symbol string
	Name   string
}
