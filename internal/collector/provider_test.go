package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartJSON = `{"chart":{"result":[{"timestamp":[1704240000,1704326400,1704412800],
"indicators":{"quote":[{"open":[10,null,12],"high":[11,null,13],"low":[9,null,11],"close":[10.5,null,12.5],"volume":[1000,null,3000]}]}}],"error":null}}`

func TestYahooFetcher_FetchBars(t *testing.T) {
	var gotPath, gotInterval, gotPeriod1 string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		gotPeriod1 = r.URL.Query().Get("period1")
		_, _ = w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, time.Second, "")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchBars(context.Background(), "SPX500", start, start.AddDate(0, 0, 10))
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
	assert.Equal(t, "1d", gotInterval)
	assert.Equal(t, "1704067200", gotPeriod1)

	require.Len(t, bars, 2, "null rows are skipped")
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 10.5, bars[0].Close)
	assert.Equal(t, int64(3000), bars[1].Volume)
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http status", http.StatusInternalServerError, "boom"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewYahooFetcher(srv.URL, time.Second, "")
			_, err := f.FetchBars(context.Background(), "X", time.Now().AddDate(0, -1, 0), time.Now())
			assert.Error(t, err)
		})
	}
}

func newExchangeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/ohlcv", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "005930", r.URL.Query().Get("ticker"))
		assert.Equal(t, "20240101", r.URL.Query().Get("start"))
		_, _ = w.Write([]byte(`[
			{"date":"20240103","open":70,"high":72,"low":69,"close":71,"volume":500,"change_pct":1.2},
			{"date":"20240102","open":69,"high":70,"low":68,"close":70,"volume":400,"change_pct":-0.4}
		]`))
	})
	mux.HandleFunc("/api/v1/market-cap", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KOSPI", r.URL.Query().Get("market"))
		_, _ = w.Write([]byte(`[{"ticker":"005930","market_cap":400},{"ticker":"000660","market_cap":100}]`))
	})
	mux.HandleFunc("/api/v1/ticker-name", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Samsung Electronics"}`))
	})
	mux.HandleFunc("/api/v1/fundamentals", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"date":"20240102","eps":1200.5,"per":null,"pbr":1.1,"bps":50000,"div":2.0}]`))
	})
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
}

func TestExchangeClient(t *testing.T) {
	srv := newExchangeServer(t)
	defer srv.Close()

	c := NewExchangeClient(srv.URL+"/", "secret", time.Second, "")
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	bars, err := c.FetchBars(ctx, "005930", start, start.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, int64(500), bars[0].Volume)

	caps, err := c.MarketCapByTicker(ctx, start, "KOSPI")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"005930": 400, "000660": 100}, caps)

	name, err := c.TickerName(ctx, "005930")
	require.NoError(t, err)
	assert.Equal(t, "Samsung Electronics", name)

	rows, err := c.Fundamentals(ctx, "005930", start, start)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].EPS.Valid)
	assert.Equal(t, 1200.5, rows[0].EPS.Float64)
	assert.False(t, rows[0].PER.Valid)
}

func TestExchangeClient_Unauthorized(t *testing.T) {
	srv := newExchangeServer(t)
	defer srv.Close()

	c := NewExchangeClient(srv.URL, "wrong", time.Second, "")
	_, err := c.TickerName(context.Background(), "005930")
	assert.Error(t, err)
}
