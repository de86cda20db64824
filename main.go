package main

import (
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"telegram-todo-bot/internal/config"
	"telegram-todo-bot/internal/dispatch"
	"telegram-todo-bot/internal/handlers"
	"telegram-todo-bot/internal/scheduler"
	"telegram-todo-bot/internal/storage"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN, DATABASE_URL etc.

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading config failed", zap.Error(err))
	}

	db, err := storage.New(cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("opening storage failed", zap.Error(err))
	}
	defer db.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("creating bot failed", zap.Error(err))
	}
	logger.Info("authorized", zap.String("account", bot.Self.UserName))

	h := handlers.New(bot, dispatch.New(db, logger), logger)

	if cfg.DigestAt != "" {
		s, err := scheduler.Start(cfg.DigestAt, db, h, logger)
		if err != nil {
			logger.Fatal("starting scheduler failed", zap.Error(err))
		}
		defer func() { _ = s.Shutdown() }()
	}

	var updates tgbotapi.UpdatesChannel
	if cfg.WebhookURL != "" {
		updates, err = listenWebhook(bot, cfg, logger)
		if err != nil {
			logger.Fatal("setting webhook failed", zap.Error(err))
		}
	} else {
		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = 60
		updates = bot.GetUpdatesChan(updateConfig)
	}

	for upd := range updates {
		h.HandleUpdate(upd)
	}
}

// listenWebhook switches the bot to webhook delivery and serves the
// callback plus a health endpoint.
func listenWebhook(bot *tgbotapi.BotAPI, cfg config.Config, logger *zap.Logger) (tgbotapi.UpdatesChannel, error) {
	wh, err := tgbotapi.NewWebhook(cfg.WebhookURL + "/callback")
	if err != nil {
		return nil, err
	}
	if _, err := bot.Request(wh); err != nil {
		return nil, err
	}

	updates := bot.ListenForWebhook("/callback")
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	go func() {
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			logger.Fatal("webhook server failed", zap.Error(err))
		}
	}()
	logger.Info("webhook registered",
		zap.String("url", cfg.WebhookURL+"/callback"),
		zap.String("listen", cfg.ListenAddr))
	return updates, nil
}
