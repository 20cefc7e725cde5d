package screener

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/collector"
	"MarketScope/internal/model"
)

func TestUniverse_ProbesBackToLastTradingDay(t *testing.T) {
	dir := &collector.MockDirectory{
		Caps: map[string]map[string]int64{
			testNow.AddDate(0, 0, -2).Format("20060102"): {
				"000660": 300,
				"005930": 900,
				"035420": 300,
				"999999": 10,
			},
		},
		Names: map[string]string{"005930": "삼성전자", "000660": "SK하이닉스"},
	}
	s := New(newStubLoader(), mustRules(t, model.VariantMultiFactor),
		WithClock(clock), WithDirectory(dir), WithTopN(3))

	universe, fallback := s.Universe(context.Background(), "KOSPI")
	assert.False(t, fallback)
	assert.Equal(t, []model.UniverseEntry{
		{Name: "삼성전자", Symbol: "005930"},
		{Name: "SK하이닉스", Symbol: "000660"},
		{Name: "035420", Symbol: "035420"},
	}, universe)
}

func TestUniverse_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		dir  collector.Directory
	}{
		{"no directory", nil},
		{"directory error", &collector.MockDirectory{Err: errors.New("gateway timeout")}},
		{"no trading day in window", &collector.MockDirectory{Caps: map[string]map[string]int64{
			testNow.AddDate(0, 0, -7).Format("20060102"): {"005930": 1},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{WithClock(clock), WithTopN(5)}
			if tt.dir != nil {
				opts = append(opts, WithDirectory(tt.dir))
			}
			s := New(newStubLoader(), mustRules(t, model.VariantMultiFactor), opts...)

			universe, fallback := s.Universe(context.Background(), "KOSPI")
			assert.True(t, fallback)
			require.Len(t, universe, 5)
			assert.Equal(t, "005930", universe[0].Symbol)
		})
	}
}

func TestScreenMarket_ReportsFallback(t *testing.T) {
	loader := newStubLoader()
	for _, e := range FallbackUniverse()[:2] {
		loader.bars[e.Symbol] = trendBars(70, 100, 1, 2)
	}
	s := New(loader, mustRules(t, model.VariantMultiFactor), WithClock(clock), WithTopN(2))

	res, err := s.ScreenMarket(context.Background(), "KOSPI")
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, "KOSPI", res.Market)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 2, res.Qualified)
}
