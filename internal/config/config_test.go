package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), envconfig.MapLookuper(nil))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Second, cfg.Exchange.Timeout)
	assert.Equal(t, "multi_factor", cfg.Screener.Variant)
	assert.Equal(t, "KOSPI", cfg.Screener.Market)
	assert.Equal(t, 100, cfg.Screener.TopN)
	assert.Equal(t, 7, cfg.Screener.ProbeDays)
	assert.Equal(t, "1y", cfg.Overview.Period)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateScreen())
	assert.Error(t, cfg.ValidateBot())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: file-token
  chat_id: "100"
exchange:
  base_url: http://gateway.local
  timeout: 3s
screener:
  variant: new_high
  top_n: 50
cache:
  ttl: 1m
`)
	env := envconfig.MapLookuper(map[string]string{
		"TELEGRAM_BOT_TOKEN":      "env-token",
		"SCREENER_NEW_HIGH_RATIO": "0.985",
		"LOG_FORMAT":              "json",
		"SCREENER_MARKET":         "kosdaq",
	})

	cfg, err := LoadWith(context.Background(), path, env)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "100", cfg.Telegram.ChatID)
	assert.Equal(t, 3*time.Second, cfg.Exchange.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "new_high", cfg.Screener.Variant)
	assert.Equal(t, 50, cfg.Screener.TopN)
	assert.Equal(t, 0.985, cfg.Screener.NewHighRatio)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "KOSDAQ", cfg.Screener.Market)
	require.NoError(t, cfg.ValidateBot())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown variant", func(c *Config) { c.Screener.Variant = "momentum" }},
		{"unknown market", func(c *Config) { c.Screener.Market = "NYSE" }},
		{"ratio below range", func(c *Config) { c.Screener.NewHighRatio = 0.9 }},
		{"ratio above range", func(c *Config) { c.Screener.NewHighRatio = 1.01 }},
		{"bad period", func(c *Config) { c.Overview.Period = "10y" }},
		{"negative top n", func(c *Config) { c.Screener.TopN = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWith(context.Background(), "", envconfig.MapLookuper(nil))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "screener: [")
	_, err := LoadWith(context.Background(), path, envconfig.MapLookuper(nil))
	assert.Error(t, err)
}
