package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/swingbot/bot"
	"github.com/rustyeddy/swingbot/config"
	"github.com/rustyeddy/swingbot/exchange"
	"github.com/rustyeddy/swingbot/journal"
	"github.com/rustyeddy/swingbot/notify"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the market scanner until interrupted",
	Long: `Run the scan/execute loop on the configured interval.

Credentials come from the environment (or a .env file in the working
directory): BINANCE_API_KEY, BINANCE_API_SECRET and, for alerts,
TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.

Example:
  swingbot run --config swingbot.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	secrets, err := config.LoadSecrets()
	if err != nil {
		return fmt.Errorf("load secrets: %w", err)
	}

	log, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Telegram.Enabled {
		if !secrets.TelegramConfigured() {
			return fmt.Errorf("telegram enabled but TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID not set")
		}
		notifier, err = notify.NewTelegram(secrets.TelegramToken, secrets.TelegramChatID)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		log.Info("telegram notifications enabled")
	} else {
		log.Info("telegram notifications disabled")
	}

	client := exchange.NewClient(secrets.BinanceAPIKey, secrets.BinanceSecretKey)

	b, err := bot.New(bot.Options{
		Config:   cfg,
		Log:      log,
		Data:     client,
		Journal:  j,
		Notifier: notifier,
	})
	if err != nil {
		return err
	}

	log.Info("swingbot starting",
		zap.Float64("capital", cfg.Account.Capital),
		zap.Float64("risk_per_trade", cfg.Risk.RiskPerTrade),
		zap.Strings("symbols", cfg.Strategy.Symbols),
		zap.String("timeframe", cfg.Strategy.Timeframe))

	// Stop after the in-flight iteration on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return b.Run(ctx)
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Path)
	case "bolt":
		return journal.NewBolt(cfg.Path)
	case "csv":
		return journal.NewCSV(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
