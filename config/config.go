// Package config loads the bot configuration: a YAML (or JSON) file for
// everything tunable, and environment variables for credentials.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete process configuration, loaded once at startup
// and constant for the process lifetime.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Scan     ScanConfig     `json:"scan" yaml:"scan"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
}

// AccountConfig describes the paper account.
type AccountConfig struct {
	Asset      string  `json:"asset" yaml:"asset"`             // quote asset, e.g. USDT
	Capital    float64 `json:"capital" yaml:"capital"`         // paper capital
	MinBalance float64 `json:"min_balance" yaml:"min_balance"` // skip iteration below this
}

// StrategyConfig selects the instruments and history depth to scan.
type StrategyConfig struct {
	Symbols   []string `json:"symbols" yaml:"symbols"`
	Timeframe string   `json:"timeframe" yaml:"timeframe"` // candle interval, e.g. 1h
	History   int      `json:"history" yaml:"history"`     // candles fetched per scan
}

// RiskConfig is the position-sizing budget.
type RiskConfig struct {
	RiskPerTrade  float64 `json:"risk_per_trade" yaml:"risk_per_trade"`
	MinRewardRisk float64 `json:"min_reward_risk" yaml:"min_reward_risk"`
	MaxPositions  int     `json:"max_positions" yaml:"max_positions"`
	MinNotional   float64 `json:"min_notional" yaml:"min_notional"`
}

// ScanConfig drives the scheduler.
type ScanConfig struct {
	Interval string `json:"interval" yaml:"interval"` // e.g. "1h", "30m"
}

// ParseInterval converts the scan interval to a duration.
func (s ScanConfig) ParseInterval() (time.Duration, error) {
	return time.ParseDuration(s.Interval)
}

// JournalConfig selects the trade-history backend.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "sqlite", "bolt" or "csv"
	Path string `json:"path" yaml:"path"`
}

// LogConfig controls the structured log output.
type LogConfig struct {
	File  string `json:"file,omitempty" yaml:"file,omitempty"` // empty = stderr only
	Level string `json:"level" yaml:"level"`
}

// TelegramConfig toggles trade alerts. Token and chat id come from the
// environment, not the file.
type TelegramConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration to path, as YAML for .yaml/.yml
// extensions and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for the mistakes that would otherwise
// surface mid-iteration.
func (c *Config) Validate() error {
	if c.Account.Asset == "" {
		return fmt.Errorf("account.asset is required")
	}
	if c.Account.Capital <= 0 {
		return fmt.Errorf("account.capital must be positive")
	}
	if len(c.Strategy.Symbols) == 0 {
		return fmt.Errorf("strategy.symbols must not be empty")
	}
	for _, s := range c.Strategy.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("strategy.symbols contains an empty symbol")
		}
	}
	if c.Strategy.Timeframe == "" {
		return fmt.Errorf("strategy.timeframe is required")
	}
	if c.Strategy.History < 100 {
		return fmt.Errorf("strategy.history must be at least 100, got %d", c.Strategy.History)
	}
	if c.Risk.RiskPerTrade <= 0 || c.Risk.RiskPerTrade > 1 {
		return fmt.Errorf("risk.risk_per_trade must be between 0 and 1")
	}
	if c.Risk.MinRewardRisk <= 0 {
		return fmt.Errorf("risk.min_reward_risk must be positive")
	}
	if c.Risk.MaxPositions <= 0 {
		return fmt.Errorf("risk.max_positions must be positive")
	}
	if c.Risk.MinNotional < 0 {
		return fmt.Errorf("risk.min_notional must not be negative")
	}
	if d, err := c.Scan.ParseInterval(); err != nil || d <= 0 {
		return fmt.Errorf("scan.interval must be a positive duration, got %q", c.Scan.Interval)
	}
	switch c.Journal.Type {
	case "sqlite", "bolt", "csv":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'bolt' or 'csv'")
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	return nil
}

// Default returns a configuration with the standard paper-bot settings.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Asset:      "USDT",
			Capital:    100,
			MinBalance: 10,
		},
		Strategy: StrategyConfig{
			Symbols:   []string{"BTCUSDT", "ETHUSDT"},
			Timeframe: "1h",
			History:   100,
		},
		Risk: RiskConfig{
			RiskPerTrade:  0.015,
			MinRewardRisk: 2.0,
			MaxPositions:  1,
			MinNotional:   10,
		},
		Scan: ScanConfig{
			Interval: "1h",
		},
		Journal: JournalConfig{
			Type: "sqlite",
			Path: "./trades.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
