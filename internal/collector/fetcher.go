package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"MarketScope/internal/model"
)

// DefaultTimeout bounds every provider request.
const DefaultTimeout = 15 * time.Second

// Fetcher returns the raw daily bars of a symbol between start and end.
// Bars may come back unordered or with provider quirks; the Loader normalizes them.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// Directory lists the tickers of an exchange segment.
type Directory interface {
	// MarketCapByTicker returns ticker -> market capitalization on date.
	// An empty map means the exchange did not trade that day.
	MarketCapByTicker(ctx context.Context, date time.Time, market string) (map[string]int64, error)
	TickerName(ctx context.Context, ticker string) (string, error)
}

// FundamentalsSource returns dated fundamentals rows for a ticker.
type FundamentalsSource interface {
	Fundamentals(ctx context.Context, ticker string, start, end time.Time) ([]model.Fundamentals, error)
}

func newHTTPClient(timeout time.Duration, proxyURL string) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
