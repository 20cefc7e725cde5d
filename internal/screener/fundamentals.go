package screener

import (
	"context"
	"math"
	"time"

	"github.com/guregu/null/v6"
)

// epsLookback is how far back from a reference date an EPS row may be taken.
const epsLookback = 7

// epsChange returns the year-over-year EPS change in percent, measured
// against |EPS a year ago|. Any gap in the fundamentals yields null.
func (s *Screener) epsChange(ctx context.Context, symbol string) null.Float {
	if s.fundamentals == nil {
		return null.Float{}
	}
	now := s.now()
	cur, ok := s.epsAt(ctx, symbol, now)
	if !ok {
		return null.Float{}
	}
	prev, ok := s.epsAt(ctx, symbol, now.AddDate(-1, 0, 0))
	if !ok || prev == 0 {
		return null.Float{}
	}
	return null.FloatFrom((cur - prev) / math.Abs(prev) * 100)
}

// epsAt returns the newest valid EPS within epsLookback days up to at.
func (s *Screener) epsAt(ctx context.Context, symbol string, at time.Time) (float64, bool) {
	rows, err := s.fundamentals.Fundamentals(ctx, symbol, at.AddDate(0, 0, -epsLookback), at)
	if err != nil {
		s.log.WithField("symbol", symbol).Debugf("fundamentals unavailable: %v", err)
		return 0, false
	}
	var (
		best  float64
		found bool
		when  time.Time
	)
	for _, r := range rows {
		if !r.EPS.Valid {
			continue
		}
		if !found || r.Date.After(when) {
			best, when, found = r.EPS.Float64, r.Date, true
		}
	}
	return best, found
}
