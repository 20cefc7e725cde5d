package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"MarketScope/internal/model"
	"MarketScope/internal/screener"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Telegram   TelegramConfig   `yaml:"telegram"`
	GlobalFeed GlobalFeedConfig `yaml:"global_feed"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Cache      CacheConfig      `yaml:"cache"`
	Screener   ScreenerConfig   `yaml:"screener"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Overview   OverviewConfig   `yaml:"overview"`
	Logging    LoggingConfig    `yaml:"logging"`
	Proxy      string           `yaml:"proxy" env:"HTTPS_PROXY, overwrite"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN, overwrite"`
	ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID, overwrite"`
}

// GlobalFeedConfig configures the multi-market chart feed. An empty base URL
// means the public endpoint.
type GlobalFeedConfig struct {
	BaseURL string        `yaml:"base_url" env:"GLOBAL_FEED_BASE_URL, overwrite"`
	Timeout time.Duration `yaml:"timeout" env:"GLOBAL_FEED_TIMEOUT, overwrite"`
}

// ExchangeConfig configures the exchange-listing REST gateway.
type ExchangeConfig struct {
	BaseURL string        `yaml:"base_url" env:"EXCHANGE_BASE_URL, overwrite"`
	APIKey  string        `yaml:"api_key" env:"EXCHANGE_API_KEY, overwrite"`
	Timeout time.Duration `yaml:"timeout" env:"EXCHANGE_TIMEOUT, overwrite"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL, overwrite"`
}

type ScreenerConfig struct {
	Market       string  `yaml:"market" env:"SCREENER_MARKET, overwrite"`
	Variant      string  `yaml:"variant" env:"SCREENER_VARIANT, overwrite"`
	TopN         int     `yaml:"top_n" env:"SCREENER_TOP_N, overwrite"`
	NewHighRatio float64 `yaml:"new_high_ratio" env:"SCREENER_NEW_HIGH_RATIO, overwrite"`
	ProbeDays    int     `yaml:"probe_days" env:"SCREENER_PROBE_DAYS, overwrite"`
	ReportLimit  int     `yaml:"report_limit" env:"SCREENER_REPORT_LIMIT, overwrite"`
}

type ScheduleConfig struct {
	ScreenCron   string `yaml:"screen_cron" env:"CRON_SCREEN, overwrite"`
	OverviewCron string `yaml:"overview_cron" env:"CRON_OVERVIEW, overwrite"`
}

type OverviewConfig struct {
	Period string `yaml:"period" env:"OVERVIEW_PERIOD, overwrite"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL, overwrite"`
	Format string `yaml:"format" env:"LOG_FORMAT, overwrite"`
	Output string `yaml:"output" env:"LOG_OUTPUT, overwrite"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(ctx context.Context, path string) (*Config, error) {
	return LoadWith(ctx, path, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit environment source.
func LoadWith(ctx context.Context, path string, env envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: env}); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.GlobalFeed.Timeout == 0 {
		c.GlobalFeed.Timeout = 15 * time.Second
	}
	if c.Exchange.Timeout == 0 {
		c.Exchange.Timeout = 15 * time.Second
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Screener.Market == "" {
		c.Screener.Market = "KOSPI"
	}
	c.Screener.Market = strings.ToUpper(strings.TrimSpace(c.Screener.Market))
	if c.Screener.Variant == "" {
		c.Screener.Variant = string(model.VariantMultiFactor)
	}
	if c.Screener.TopN == 0 {
		c.Screener.TopN = 100
	}
	if c.Screener.ProbeDays == 0 {
		c.Screener.ProbeDays = screener.DefaultProbeDays
	}
	if c.Screener.ReportLimit == 0 {
		c.Screener.ReportLimit = 20
	}
	if c.Schedule.ScreenCron == "" {
		c.Schedule.ScreenCron = "0 30 16 * * 1-5"
	}
	if c.Schedule.OverviewCron == "" {
		c.Schedule.OverviewCron = "0 0 8 * * 1-5"
	}
	if c.Overview.Period == "" {
		c.Overview.Period = string(model.Period1Y)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	if _, err := screener.RulesFor(model.Variant(c.Screener.Variant), c.Screener.NewHighRatio); err != nil {
		return fmt.Errorf("screener: %w", err)
	}
	if !screener.ValidMarket(c.Screener.Market) {
		return fmt.Errorf("screener.market %q must be one of %s", c.Screener.Market, strings.Join(screener.Markets, ", "))
	}
	if c.Screener.TopN <= 0 {
		return fmt.Errorf("screener.top_n must be positive")
	}
	if c.Screener.ProbeDays <= 0 {
		return fmt.Errorf("screener.probe_days must be positive")
	}
	if _, err := model.ParsePeriod(c.Overview.Period); err != nil {
		return fmt.Errorf("overview.period: %w", err)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	return nil
}

// ValidateScreen checks what a screening run needs on top of Validate.
func (c *Config) ValidateScreen() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required for screening")
	}
	return nil
}

// ValidateBot checks what the bot needs on top of ValidateScreen.
func (c *Config) ValidateBot() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return c.ValidateScreen()
}
