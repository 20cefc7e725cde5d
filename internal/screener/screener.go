package screener

import (
	"context"
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"MarketScope/internal/collector"
	"MarketScope/internal/model"
)

// SeriesLoader serves normalized series. *collector.Loader satisfies it.
type SeriesLoader interface {
	Load(ctx context.Context, market model.Market, symbol string, period model.Period) (*model.Series, error)
}

// Screener runs the cascade over a universe, one symbol at a time.
type Screener struct {
	loader       SeriesLoader
	directory    collector.Directory
	fundamentals collector.FundamentalsSource
	feed         model.Market
	rules        Rules
	topN         int
	probeDays    int
	now          func() time.Time
	progress     func(model.Progress)
	log          *logrus.Entry
}

// Option configures a Screener.
type Option func(*Screener)

// WithDirectory sets the market-cap directory used for universe acquisition.
func WithDirectory(d collector.Directory) Option {
	return func(s *Screener) { s.directory = d }
}

// WithFundamentals enables the year-over-year EPS lookup.
func WithFundamentals(f collector.FundamentalsSource) Option {
	return func(s *Screener) { s.fundamentals = f }
}

// WithFeed selects the market feed candidate bars are loaded from.
func WithFeed(m model.Market) Option {
	return func(s *Screener) { s.feed = m }
}

// WithTopN bounds the universe size.
func WithTopN(n int) Option {
	return func(s *Screener) { s.topN = n }
}

// WithProbeDays overrides DefaultProbeDays.
func WithProbeDays(n int) Option {
	return func(s *Screener) {
		if n > 0 {
			s.probeDays = n
		}
	}
}

// WithClock injects the clock.
func WithClock(now func() time.Time) Option {
	return func(s *Screener) { s.now = now }
}

// WithProgress registers an observer called after each candidate.
func WithProgress(fn func(model.Progress)) Option {
	return func(s *Screener) { s.progress = fn }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Screener) { s.log = log }
}

// New creates a Screener applying rules.
func New(loader SeriesLoader, rules Rules, opts ...Option) *Screener {
	s := &Screener{
		loader:    loader,
		feed:      model.MarketDomestic,
		rules:     rules,
		topN:      100,
		probeDays: DefaultProbeDays,
		now:       time.Now,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithFields(logrus.Fields{"component": "screener", "variant": rules.Variant})
	return s
}

// Rules returns the active rule set.
func (s *Screener) Rules() Rules { return s.rules }

// ScreenMarket acquires the universe of market and screens it.
func (s *Screener) ScreenMarket(ctx context.Context, market string) (*model.ScreenResult, error) {
	universe, fallback := s.Universe(ctx, market)
	res, err := s.Screen(ctx, universe)
	res.Market = market
	res.UsedFallback = fallback
	return res, err
}

// Screen runs the cascade over universe sequentially. On cancellation it
// stops between candidates and returns the partial result with ctx.Err().
func (s *Screener) Screen(ctx context.Context, universe []model.UniverseEntry) (*model.ScreenResult, error) {
	started := s.now()
	res := &model.ScreenResult{
		RunID:     newRunID(started),
		Variant:   s.rules.Variant,
		RankKey:   s.rules.RankKey,
		StartedAt: started,
		Universe:  len(universe),
	}
	log := s.log.WithField("run_id", res.RunID)
	log.Infof("screening %d symbols", len(universe))

	var runErr error
	for i, entry := range universe {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		cand, err := s.evaluate(ctx, entry)
		if ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}
		res.Processed++
		switch {
		case err != nil:
			res.Errors++
			log.WithField("symbol", entry.Symbol).Warn(err)
		case cand != nil:
			res.Candidates = append(res.Candidates, cand)
		}

		if s.progress != nil {
			s.progress(model.Progress{Index: i + 1, Total: len(universe), Symbol: entry.Symbol, Name: entry.Name})
		}
	}

	rank(res.Candidates)
	res.Qualified = len(res.Candidates)
	res.FinishedAt = s.now()

	log.WithFields(logrus.Fields{
		"processed": res.Processed,
		"errors":    res.Errors,
		"qualified": res.Qualified,
	}).Info("screening finished")
	return res, runErr
}

// rank sorts descending by RankValue, keeping insertion order on ties.
func rank(cands []*model.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].RankValue > cands[j].RankValue
	})
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newRunID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
