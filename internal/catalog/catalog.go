// Package catalog holds the fixed watch-list of global assets shown in the overview.
package catalog

import (
	"strings"

	"MarketScope/internal/model"
)

// Asset is one catalog entry on the global feed.
type Asset struct {
	Name   string       `json:"name"`
	Symbol string       `json:"symbol"`
	Market model.Market `json:"market"`
}

// Category groups assets for display.
type Category struct {
	Name   string  `json:"name"`
	Assets []Asset `json:"assets"`
}

func global(name, symbol string) Asset {
	return Asset{Name: name, Symbol: symbol, Market: model.MarketGlobal}
}

var categories = []Category{
	{Name: "Indices", Assets: []Asset{
		global("KOSPI", "^KS11"),
		global("S&P 500", "^GSPC"),
		global("Nasdaq", "^IXIC"),
		global("Dow Jones", "^DJI"),
		global("Shanghai Composite", "000001.SS"),
		global("Nikkei 225", "^N225"),
		global("DAX", "^GDAXI"),
		global("FTSE 100", "^FTSE"),
	}},
	{Name: "Bonds", Assets: []Asset{
		global("US 10Y", "^TNX"),
		global("US 2Y", "^IRX"),
		global("US 30Y", "^TYX"),
	}},
	{Name: "Commodities", Assets: []Asset{
		global("Gold", "GC=F"),
		global("Silver", "SI=F"),
		global("WTI Crude", "CL=F"),
		global("Natural Gas", "NG=F"),
		global("Copper", "HG=F"),
	}},
	{Name: "Crypto", Assets: []Asset{
		global("Bitcoin", "BTC-USD"),
		global("Ethereum", "ETH-USD"),
	}},
}

// Categories returns the catalog in display order. The result is a copy.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: c.Name, Assets: append([]Asset(nil), c.Assets...)}
	}
	return out
}

// Lookup finds an asset by symbol or name, case-insensitively.
func Lookup(key string) (Asset, bool) {
	for _, c := range categories {
		for _, a := range c.Assets {
			if strings.EqualFold(a.Symbol, key) || strings.EqualFold(a.Name, key) {
				return a, true
			}
		}
	}
	return Asset{}, false
}
