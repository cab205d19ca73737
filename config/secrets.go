package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Secrets are the credentials the bot needs at runtime. They come from
// the environment (optionally seeded from a .env file) and never from the
// config file, so the file can live in version control.
type Secrets struct {
	BinanceAPIKey    string
	BinanceSecretKey string
	TelegramToken    string
	TelegramChatID   int64
}

// LoadSecrets reads credentials from the environment. A .env file in the
// working directory is loaded first when present; a missing file is fine.
func LoadSecrets() (Secrets, error) {
	_ = godotenv.Load()

	s := Secrets{
		BinanceAPIKey:    os.Getenv("BINANCE_API_KEY"),
		BinanceSecretKey: os.Getenv("BINANCE_API_SECRET"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Secrets{}, fmt.Errorf("TELEGRAM_CHAT_ID must be numeric: %w", err)
		}
		s.TelegramChatID = id
	}
	return s, nil
}

// TelegramConfigured reports whether both Telegram credentials are set.
func (s Secrets) TelegramConfigured() bool {
	return s.TelegramToken != "" && s.TelegramChatID != 0
}
