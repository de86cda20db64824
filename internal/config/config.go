package config

import (
	"errors"
	"os"
	"strings"
)

const tokenSecretPath = "/run/secrets/telegram_bot_token"

type Config struct {
	BotToken    string
	DBPath      string // SQLite file, used when DatabaseURL is empty
	DatabaseURL string // PostgreSQL DSN, switches the backend
	WebhookURL  string // public base URL; empty -> long polling
	ListenAddr  string // webhook mode HTTP listen address
	DigestAt    string // "HH:MM"; empty disables the daily digest
}

// Load reads configuration from the environment. The bot token may also
// arrive as a Docker secret, which wins over the variable.
func Load() (Config, error) {
	cfg := Config{
		BotToken:    botToken(),
		DBPath:      envOr("DB_PATH", "todo.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		WebhookURL:  strings.TrimRight(os.Getenv("WEBHOOK_URL"), "/"),
		ListenAddr:  envOr("LISTEN_ADDR", ":8080"),
		DigestAt:    os.Getenv("DIGEST_AT"),
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("bot token missing: set TELEGRAM_BOT_TOKEN or the Docker secret")
	}
	return cfg, nil
}

func botToken() string {
	if data, err := os.ReadFile(tokenSecretPath); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
