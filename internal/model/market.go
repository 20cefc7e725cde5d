package model

import (
	"fmt"
	"time"
)

// Market selects which provider backend serves a symbol.
type Market string

const (
	// MarketGlobal is the multi-market feed keyed by ticker symbols
	// (indices, commodities, FX and crypto pseudo-tickers included).
	MarketGlobal Market = "global"
	// MarketDomestic is the exchange feed keyed by 6-digit local codes.
	MarketDomestic Market = "domestic"
)

// ParseMarket maps a user-facing name to a Market.
func ParseMarket(s string) (Market, error) {
	switch s {
	case "global", "":
		return MarketGlobal, nil
	case "domestic", "krx":
		return MarketDomestic, nil
	default:
		return "", fmt.Errorf("unknown market %q", s)
	}
}

// Period is a lookback window ending now.
type Period string

const (
	Period1M Period = "1mo"
	Period3M Period = "3mo"
	Period6M Period = "6mo"
	Period1Y Period = "1y"
	Period2Y Period = "2y"
	Period5Y Period = "5y"
)

// Periods lists every supported lookback in ascending order.
var Periods = []Period{Period1M, Period3M, Period6M, Period1Y, Period2Y, Period5Y}

// ParsePeriod validates a period key.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Start returns the first day of the window that ends at end.
func (p Period) Start(end time.Time) time.Time {
	switch p {
	case Period1M:
		return end.AddDate(0, -1, 0)
	case Period3M:
		return end.AddDate(0, -3, 0)
	case Period6M:
		return end.AddDate(0, -6, 0)
	case Period1Y:
		return end.AddDate(-1, 0, 0)
	case Period2Y:
		return end.AddDate(-2, 0, 0)
	case Period5Y:
		return end.AddDate(-5, 0, 0)
	default:
		return end.AddDate(-1, 0, 0)
	}
}

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series is an ascending, gap-tolerant run of bars for one symbol.
type Series struct {
	Symbol    string    `json:"symbol"`
	Market    Market    `json:"market"`
	Period    Period    `json:"period"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.Bars) }

// Latest returns the most recent bar. The series must not be empty.
func (s *Series) Latest() OHLCV { return s.Bars[len(s.Bars)-1] }

// Closes extracts close prices in bar order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Clone returns a deep copy so cached bars stay untouched by callers.
func (s *Series) Clone() *Series {
	c := *s
	c.Bars = make([]OHLCV, len(s.Bars))
	copy(c.Bars, s.Bars)
	return &c
}
