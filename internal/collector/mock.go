package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MarketScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols with no entry in Bars get generated bars around Price.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		out := make([]model.OHLCV, 0, len(bars))
		for _, b := range bars {
			if !b.Time.Before(start) && !b.Time.After(end) {
				out = append(out, b)
			}
		}
		return out, nil
	}
	if m.Price <= 0 {
		return nil, fmt.Errorf("mock: no data for %s", symbol)
	}
	return generateMockBars(m.Price, start, end), nil
}

// Calls reports how many times symbol was fetched.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// generateMockBars emits one weekday bar per day in [start, end] on a gentle uptrend.
func generateMockBars(basePrice float64, start, end time.Time) []model.OHLCV {
	var bars []model.OHLCV
	i := 0
	for d := dayOf(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i)*0.001)
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}

// MockDirectory serves a fixed market-cap table. Dates missing from Caps
// look like holidays (empty map).
type MockDirectory struct {
	Caps  map[string]map[string]int64 // date (YYYYMMDD) -> ticker -> cap
	Names map[string]string
	Err   error
}

func (d *MockDirectory) MarketCapByTicker(_ context.Context, date time.Time, _ string) (map[string]int64, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Caps[date.Format(exchangeDateLayout)], nil
}

func (d *MockDirectory) TickerName(_ context.Context, ticker string) (string, error) {
	if name, ok := d.Names[ticker]; ok {
		return name, nil
	}
	return "", fmt.Errorf("mock: unknown ticker %s", ticker)
}

// MockFundamentals serves fixed fundamentals rows per ticker.
type MockFundamentals struct {
	Rows map[string][]model.Fundamentals
	Err  error
}

func (m *MockFundamentals) Fundamentals(_ context.Context, ticker string, start, end time.Time) ([]model.Fundamentals, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []model.Fundamentals
	for _, r := range m.Rows[ticker] {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}
