package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"MarketScope/internal/collector"
	"MarketScope/internal/config"
	"MarketScope/internal/logger"
	"MarketScope/internal/model"
	"MarketScope/internal/screener"
)

var rootCmd = &cobra.Command{
	Use:   "marketscope",
	Short: "Technical-analysis screening and market overview",
	Long: `MarketScope loads daily OHLCV series, derives technical indicators and
screens exchange listings for breakout candidates.

It provides tools for:
  - Screening KOSPI/KOSDAQ listings with one of three filter variants
  - Technical summaries of single assets and a global watch-list
  - A Telegram bot that runs screens and overviews on a schedule`,
	SilenceUsage: true,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
}

// app bundles the shared runtime built from the config.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	loader *collector.Loader
	ex     *collector.ExchangeClient
}

func loadApp(cmd *cobra.Command) (*app, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	fetchers := map[model.Market]collector.Fetcher{
		model.MarketGlobal: collector.NewYahooFetcher(cfg.GlobalFeed.BaseURL, cfg.GlobalFeed.Timeout, cfg.Proxy),
	}
	var ex *collector.ExchangeClient
	if cfg.Exchange.BaseURL != "" {
		ex = collector.NewExchangeClient(cfg.Exchange.BaseURL, cfg.Exchange.APIKey, cfg.Exchange.Timeout, cfg.Proxy)
		fetchers[model.MarketDomestic] = ex
	}
	loader := collector.NewLoader(fetchers,
		collector.WithCacheTTL(cfg.Cache.TTL),
		collector.WithLogger(logger.WithComponent(log, "loader")),
	)
	log.WithField("config", path).Debug("config loaded")
	return &app{cfg: cfg, log: log, loader: loader, ex: ex}, nil
}

// newScreener builds a screener from the config. Flags that were set on the
// command line have already been folded into cfg.
func (a *app) newScreener(opts ...screener.Option) (*screener.Screener, error) {
	if err := a.cfg.ValidateScreen(); err != nil {
		return nil, err
	}
	rules, err := screener.RulesFor(model.Variant(a.cfg.Screener.Variant), a.cfg.Screener.NewHighRatio)
	if err != nil {
		return nil, err
	}
	base := []screener.Option{
		screener.WithDirectory(a.ex),
		screener.WithFundamentals(a.ex),
		screener.WithTopN(a.cfg.Screener.TopN),
		screener.WithProbeDays(a.cfg.Screener.ProbeDays),
		screener.WithLogger(logger.WithComponent(a.log, "screener")),
	}
	return screener.New(a.loader, rules, append(base, opts...)...), nil
}
