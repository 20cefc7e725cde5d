package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"MarketScope/internal/model"
)

const exchangeDateLayout = "20060102"

// ExchangeClient talks to the exchange-listing REST gateway. It serves the
// domestic feed (6-digit codes), the market-cap directory and fundamentals.
type ExchangeClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewExchangeClient creates a new client with optional proxy support.
func NewExchangeClient(baseURL, apiKey string, timeout time.Duration, proxyURL string) *ExchangeClient {
	return &ExchangeClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(timeout, proxyURL),
	}
}

func (c *ExchangeClient) Name() string { return "exchange" }

// exBar is the JSON shape of one OHLCV row. ChangePct is dropped on conversion.
type exBar struct {
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	ChangePct float64 `json:"change_pct"`
}

type exMarketCap struct {
	Ticker    string `json:"ticker"`
	MarketCap int64  `json:"market_cap"`
}

type exFundamentals struct {
	Date string     `json:"date"`
	EPS  null.Float `json:"eps"`
	PER  null.Float `json:"per"`
	PBR  null.Float `json:"pbr"`
	BPS  null.Float `json:"bps"`
	DIV  null.Float `json:"div"`
}

// FetchBars returns the date-ranged OHLCV rows of a ticker.
func (c *ExchangeClient) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("ticker", symbol)
	q.Set("start", start.Format(exchangeDateLayout))
	q.Set("end", end.Format(exchangeDateLayout))

	var rows []exBar
	if err := c.getJSON(ctx, "ohlcv", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(rows))
	for _, r := range rows {
		t, err := time.Parse(exchangeDateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("parse bar date %q: %w", r.Date, err)
		}
		bars = append(bars, model.OHLCV{
			Time:   t,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: int64(r.Volume),
		})
	}
	return bars, nil
}

// MarketCapByTicker returns every listed ticker's market cap on date.
func (c *ExchangeClient) MarketCapByTicker(ctx context.Context, date time.Time, market string) (map[string]int64, error) {
	q := url.Values{}
	q.Set("date", date.Format(exchangeDateLayout))
	q.Set("market", market)

	var rows []exMarketCap
	if err := c.getJSON(ctx, "market-cap", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch market cap: %w", err)
	}
	caps := make(map[string]int64, len(rows))
	for _, r := range rows {
		if r.Ticker == "" {
			continue
		}
		caps[r.Ticker] = r.MarketCap
	}
	return caps, nil
}

// TickerName resolves a ticker to its display name.
func (c *ExchangeClient) TickerName(ctx context.Context, ticker string) (string, error) {
	q := url.Values{}
	q.Set("ticker", ticker)

	var result struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "ticker-name", q, &result); err != nil {
		return "", fmt.Errorf("fetch ticker name: %w", err)
	}
	if result.Name == "" {
		return "", fmt.Errorf("fetch ticker name: empty name for %s", ticker)
	}
	return result.Name, nil
}

// Fundamentals returns dated EPS/PER/PBR/BPS/DIV rows. Missing values are null.
func (c *ExchangeClient) Fundamentals(ctx context.Context, ticker string, start, end time.Time) ([]model.Fundamentals, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("start", start.Format(exchangeDateLayout))
	q.Set("end", end.Format(exchangeDateLayout))

	var rows []exFundamentals
	if err := c.getJSON(ctx, "fundamentals", q, &rows); err != nil {
		return nil, fmt.Errorf("fetch fundamentals: %w", err)
	}
	out := make([]model.Fundamentals, 0, len(rows))
	for _, r := range rows {
		t, err := time.Parse(exchangeDateLayout, r.Date)
		if err != nil {
			continue
		}
		out = append(out, model.Fundamentals{
			Date: t,
			EPS:  r.EPS,
			PER:  r.PER,
			PBR:  r.PBR,
			BPS:  r.BPS,
			DIV:  r.DIV,
		})
	}
	return out, nil
}

func (c *ExchangeClient) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/api/v1/%s?%s", c.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
