package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"MarketScope/internal/model"
	"MarketScope/internal/notifier"
	"MarketScope/internal/overview"
	"MarketScope/internal/screener"
)

// MarketScreener runs one screening pass over a market's universe.
type MarketScreener interface {
	ScreenMarket(ctx context.Context, market string) (*model.ScreenResult, error)
}

// Sender delivers a formatted report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

const sendRetries = 3

// Scheduler manages all cron tasks and bot commands.
type Scheduler struct {
	Cron        *cron.Cron
	Screener    MarketScreener
	Overview    *overview.Service
	Notifier    Sender
	Market      string
	Period      model.Period
	ReportLimit int
	Ctx         context.Context

	log     *logrus.Entry
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc MarketScreener, ov *overview.Service, n Sender, log *logrus.Entry) *Scheduler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Screener:    sc,
		Overview:    ov,
		Notifier:    n,
		Market:      "KOSPI",
		Period:      model.Period1Y,
		ReportLimit: 20,
		Ctx:         ctx,
		log:         log.WithField("component", "scheduler"),
	}
}

// RegisterAll registers the screening and overview tasks.
func (s *Scheduler) RegisterAll(screenCron, overviewCron string) error {
	if _, err := s.Cron.AddFunc(screenCron, func() { s.runScreen(s.Market) }); err != nil {
		return fmt.Errorf("register screen task: %w", err)
	}
	if _, err := s.Cron.AddFunc(overviewCron, s.runOverview); err != nil {
		return fmt.Errorf("register overview task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunScreenNow executes a screening pass immediately. It reports false when
// another pass is already in flight.
func (s *Scheduler) RunScreenNow(market string) bool {
	return s.runScreen(market)
}

func (s *Scheduler) runScreen(market string) bool {
	if !s.claim() {
		s.log.WithField("market", market).Warn("screen already running, skipped")
		return false
	}
	s.screen(market)
	return true
}

// claim marks a screen as running. It reports false when one already is.
func (s *Scheduler) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

// screen runs a claimed pass and releases the claim when done.
func (s *Scheduler) screen(market string) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log := s.log.WithField("market", market)
	log.Info("running screen")
	res, err := s.Screener.ScreenMarket(s.Ctx, market)
	if err != nil {
		log.WithError(err).Error("screen failed")
		if res == nil {
			s.trySend(fmt.Sprintf("❌ screen %s failed: %v", market, err))
			return
		}
	}
	s.trySend(notifier.FormatScreenReport(res, s.ReportLimit))
}

func (s *Scheduler) runOverview() {
	s.log.WithField("period", s.Period).Info("running overview")
	cards := s.Overview.Catalog(s.Ctx, s.Period)
	s.trySend(notifier.FormatOverview(s.Period, cards, time.Now()))
}

func (s *Scheduler) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	switch strings.ToLower(fields[0]) {
	case "/screen":
		market := strings.ToUpper(s.Market)
		if len(fields) > 1 {
			market = strings.ToUpper(fields[1])
		}
		if !screener.ValidMarket(market) {
			return fmt.Sprintf("unknown market %q, use KOSPI or KOSDAQ", market)
		}
		if !s.claim() {
			return "⏳ a screen is already running"
		}
		go s.screen(market)
		return fmt.Sprintf("🔎 screening %s started, the report follows when done", market)
	case "/asset":
		if len(fields) < 2 {
			return "usage: /asset &lt;symbol or name&gt;"
		}
		asset := overview.Resolve(strings.Join(fields[1:], " "))
		return notifier.FormatAssetCard(s.Overview.Asset(ctx, asset, s.Period))
	case "/overview":
		cards := s.Overview.Catalog(ctx, s.Period)
		return notifier.FormatOverview(s.Period, cards, time.Now())
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.WithError(err).Error("send notification")
	}
}
