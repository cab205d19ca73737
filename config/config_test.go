package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "bot.yaml", `
account:
  asset: USDT
  capital: 250
  min_balance: 10
strategy:
  symbols: [BTCUSDT, ETHUSDT, SOLUSDT]
  timeframe: 1h
  history: 150
risk:
  risk_per_trade: 0.02
  min_reward_risk: 2.5
  max_positions: 2
  min_notional: 10
scan:
  interval: 30m
journal:
  type: bolt
  path: ./trades.bolt
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.Account.Capital)
	assert.Len(t, cfg.Strategy.Symbols, 3)
	assert.Equal(t, 0.02, cfg.Risk.RiskPerTrade)
	assert.Equal(t, "bolt", cfg.Journal.Type)

	d, err := cfg.Scan.ParseInterval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "bot.json", `{
		"account": {"asset": "USDT", "capital": 100, "min_balance": 10},
		"strategy": {"symbols": ["BTCUSDT"], "timeframe": "1h", "history": 100},
		"risk": {"risk_per_trade": 0.015, "min_reward_risk": 2, "max_positions": 1, "min_notional": 10},
		"scan": {"interval": "1h"},
		"journal": {"type": "sqlite", "path": "./t.db"}
	}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT"}, cfg.Strategy.Symbols)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/bot.yaml")
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capital", func(c *Config) { c.Account.Capital = 0 }},
		{"no symbols", func(c *Config) { c.Strategy.Symbols = nil }},
		{"blank symbol", func(c *Config) { c.Strategy.Symbols = []string{" "} }},
		{"short history", func(c *Config) { c.Strategy.History = 50 }},
		{"risk too high", func(c *Config) { c.Risk.RiskPerTrade = 1.5 }},
		{"zero reward risk", func(c *Config) { c.Risk.MinRewardRisk = 0 }},
		{"zero cap", func(c *Config) { c.Risk.MaxPositions = 0 }},
		{"bad interval", func(c *Config) { c.Scan.Interval = "soon" }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "excel" }},
		{"no journal path", func(c *Config) { c.Journal.Path = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "k")
	t.Setenv("BINANCE_API_SECRET", "s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	s, err := LoadSecrets()
	require.NoError(t, err)
	assert.Equal(t, "k", s.BinanceAPIKey)
	assert.Equal(t, int64(42), s.TelegramChatID)
	assert.True(t, s.TelegramConfigured())
}

func TestLoadSecretsBadChatID(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	_, err := LoadSecrets()
	assert.Error(t, err)
}

func TestTelegramConfigured(t *testing.T) {
	assert.False(t, Secrets{}.TelegramConfigured())
	assert.False(t, Secrets{TelegramToken: "tok"}.TelegramConfigured())
	assert.True(t, Secrets{TelegramToken: "tok", TelegramChatID: 1}.TelegramConfigured())
}
