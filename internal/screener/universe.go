package screener

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"MarketScope/internal/model"
)

// DefaultProbeDays is how many calendar days the universe lookup walks back
// to find a trading day with market-cap data.
const DefaultProbeDays = 7

// Markets lists the exchange segments a universe can be drawn from.
var Markets = []string{"KOSPI", "KOSDAQ"}

// ValidMarket reports whether market is one of Markets. The match is exact;
// callers uppercase user input first.
func ValidMarket(market string) bool {
	for _, m := range Markets {
		if market == m {
			return true
		}
	}
	return false
}

// fallbackUniverse is used when the directory cannot supply any trading day.
var fallbackUniverse = []model.UniverseEntry{
	{Name: "삼성전자", Symbol: "005930"},
	{Name: "SK하이닉스", Symbol: "000660"},
	{Name: "LG에너지솔루션", Symbol: "373220"},
	{Name: "삼성바이오로직스", Symbol: "207940"},
	{Name: "현대차", Symbol: "005380"},
	{Name: "기아", Symbol: "000270"},
	{Name: "셀트리온", Symbol: "068270"},
	{Name: "KB금융", Symbol: "105560"},
	{Name: "NAVER", Symbol: "035420"},
	{Name: "포스코홀딩스", Symbol: "005490"},
	{Name: "LG화학", Symbol: "051910"},
	{Name: "삼성SDI", Symbol: "006400"},
	{Name: "현대모비스", Symbol: "012330"},
	{Name: "신한지주", Symbol: "055550"},
	{Name: "삼성물산", Symbol: "028260"},
	{Name: "카카오", Symbol: "035720"},
	{Name: "한국전력", Symbol: "015760"},
	{Name: "SK텔레콤", Symbol: "017670"},
	{Name: "LG전자", Symbol: "066570"},
	{Name: "하나금융지주", Symbol: "086790"},
}

// FallbackUniverse returns a copy of the hardcoded large-cap list.
func FallbackUniverse() []model.UniverseEntry {
	out := make([]model.UniverseEntry, len(fallbackUniverse))
	copy(out, fallbackUniverse)
	return out
}

// Universe returns the top-N tickers of market by capitalization on the most
// recent trading day, probing back up to probeDays calendar days. The bool
// reports whether the fallback list was used instead.
func (s *Screener) Universe(ctx context.Context, market string) ([]model.UniverseEntry, bool) {
	log := s.log.WithField("market", market)
	if s.directory == nil {
		log.Warn("no directory configured, using fallback universe")
		return s.capFallback(), true
	}

	today := s.now()
	for offset := 0; offset < s.probeDays; offset++ {
		if ctx.Err() != nil {
			break
		}
		date := today.AddDate(0, 0, -offset)
		caps, err := s.directory.MarketCapByTicker(ctx, date, market)
		if err != nil {
			log.WithError(err).WithField("date", date.Format("2006-01-02")).Warn("market cap lookup failed")
			continue
		}
		if len(caps) == 0 {
			continue
		}
		log.WithFields(logrus.Fields{
			"date":    date.Format("2006-01-02"),
			"tickers": len(caps),
		}).Debug("market cap table found")
		return s.topByCap(ctx, caps), false
	}

	log.Warnf("no market cap data within %d days, using fallback universe", s.probeDays)
	return s.capFallback(), true
}

func (s *Screener) topByCap(ctx context.Context, caps map[string]int64) []model.UniverseEntry {
	tickers := make([]string, 0, len(caps))
	for t := range caps {
		tickers = append(tickers, t)
	}
	sort.Slice(tickers, func(i, j int) bool {
		if caps[tickers[i]] != caps[tickers[j]] {
			return caps[tickers[i]] > caps[tickers[j]]
		}
		return tickers[i] < tickers[j]
	})
	if s.topN > 0 && len(tickers) > s.topN {
		tickers = tickers[:s.topN]
	}

	entries := make([]model.UniverseEntry, 0, len(tickers))
	for _, t := range tickers {
		name, err := s.directory.TickerName(ctx, t)
		if err != nil || name == "" {
			name = t
		}
		entries = append(entries, model.UniverseEntry{Name: name, Symbol: t})
	}
	return entries
}

func (s *Screener) capFallback() []model.UniverseEntry {
	out := FallbackUniverse()
	if s.topN > 0 && len(out) > s.topN {
		out = out[:s.topN]
	}
	return out
}
