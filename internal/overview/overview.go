// Package overview loads and summarizes single assets and the whole catalog.
package overview

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"MarketScope/internal/calculator"
	"MarketScope/internal/catalog"
	"MarketScope/internal/model"
	"MarketScope/internal/summary"
)

// SeriesLoader serves normalized series. *collector.Loader satisfies it.
type SeriesLoader interface {
	Load(ctx context.Context, market model.Market, symbol string, period model.Period) (*model.Series, error)
}

// Service builds asset cards.
type Service struct {
	loader SeriesLoader
	log    *logrus.Entry
}

// New creates a Service.
func New(loader SeriesLoader, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{loader: loader, log: log.WithField("component", "overview")}
}

// Resolve maps user input to an asset. Catalog names and symbols win; a
// 6-digit code is a domestic listing; anything else is a global ticker.
func Resolve(key string) catalog.Asset {
	if a, ok := catalog.Lookup(key); ok {
		return a
	}
	if isDomesticCode(key) {
		return catalog.Asset{Name: key, Symbol: key, Market: model.MarketDomestic}
	}
	return catalog.Asset{Name: key, Symbol: key, Market: model.MarketGlobal}
}

func isDomesticCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Asset loads one asset and computes its frame and summary. Load failures
// are carried in the card, never returned.
func (s *Service) Asset(ctx context.Context, a catalog.Asset, period model.Period) model.AssetCard {
	card := model.AssetCard{Name: a.Name, Symbol: a.Symbol, Market: a.Market, Period: period}
	series, err := s.loader.Load(ctx, a.Market, a.Symbol, period)
	if err != nil {
		card.Err = err
		return card
	}
	card.Frame = calculator.Compute(series)
	card.Summary = summary.Summarize(card.Frame)
	return card
}

// Catalog builds a card for every catalog asset, in catalog order.
func (s *Service) Catalog(ctx context.Context, period model.Period) []model.AssetCard {
	started := time.Now()
	var cards []model.AssetCard
	failed := 0
	for _, cat := range catalog.Categories() {
		for _, a := range cat.Assets {
			if ctx.Err() != nil {
				return cards
			}
			card := s.Asset(ctx, a, period)
			card.Category = cat.Name
			if card.Err != nil {
				failed++
			}
			cards = append(cards, card)
		}
	}
	s.log.WithFields(logrus.Fields{
		"assets":  len(cards),
		"failed":  failed,
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Info("overview built")
	return cards
}
