package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"MarketScope/internal/model"
)

// DefaultCacheTTL is how long a loaded series is reused.
const DefaultCacheTTL = 5 * time.Minute

// ErrDataUnavailable is returned whenever a series cannot be served: the
// provider failed, returned nothing, or returned fewer than two bars.
var ErrDataUnavailable = errors.New("data unavailable")

// Loader serves normalized series per (market, symbol, period). Provider
// errors never escape it; they are flattened into ErrDataUnavailable.
type Loader struct {
	fetchers map[model.Market]Fetcher
	cache    *Cache
	group    singleflight.Group
	now      func() time.Time
	log      *logrus.Entry
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock injects the clock used for period windows and cache expiry.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		if ttl > 0 {
			l.cache.ttl = ttl
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader builds a loader that routes each market to its fetcher.
func NewLoader(fetchers map[model.Market]Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetchers: fetchers,
		now:      time.Now,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	l.cache = NewCache(DefaultCacheTTL, func() time.Time { return l.now() })
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.WithField("component", "loader")
	return l
}

// Load returns the series of symbol over period. The result is a private copy.
func (l *Loader) Load(ctx context.Context, market model.Market, symbol string, period model.Period) (*model.Series, error) {
	key := cacheKey{market: market, symbol: symbol, period: period}
	if s, ok := l.cache.get(key); ok {
		return s.Clone(), nil
	}

	v, err, _ := l.group.Do(key.String(), func() (interface{}, error) {
		if s, ok := l.cache.get(key); ok {
			return s, nil
		}
		s, err := l.fetch(ctx, market, symbol, period)
		if err != nil {
			return nil, err
		}
		l.cache.put(key, s)
		return s, nil
	})
	if err != nil {
		l.log.WithFields(logrus.Fields{
			"symbol": symbol,
			"market": market,
			"period": period,
		}).Warnf("series unavailable: %v", err)
		return nil, err
	}
	return v.(*model.Series).Clone(), nil
}

func (l *Loader) fetch(ctx context.Context, market model.Market, symbol string, period model.Period) (*model.Series, error) {
	fetcher, ok := l.fetchers[market]
	if !ok {
		return nil, fmt.Errorf("%w: no provider for market %q", ErrDataUnavailable, market)
	}

	end := l.now()
	start := period.Start(end)
	bars, err := fetcher.FetchBars(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDataUnavailable, fetcher.Name(), symbol, err)
	}

	bars = Normalize(bars)
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: %s %s: %d usable bars", ErrDataUnavailable, fetcher.Name(), symbol, len(bars))
	}
	return &model.Series{
		Symbol:    symbol,
		Market:    market,
		Period:    period,
		Bars:      bars,
		FetchedAt: end,
	}, nil
}

// Normalize sorts bars ascending, keeps the last row for a repeated date,
// drops rows with non-positive prices and clamps negative volume to zero.
func Normalize(bars []model.OHLCV) []model.OHLCV {
	clean := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			continue
		}
		if b.Volume < 0 {
			b.Volume = 0
		}
		clean = append(clean, b)
	}
	sort.SliceStable(clean, func(i, j int) bool { return clean[i].Time.Before(clean[j].Time) })

	out := clean[:0]
	for _, b := range clean {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
