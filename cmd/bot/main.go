package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/joho/godotenv/autoload"

	"github.com/romanzzaa/twse-alert-bot/internal/bot"
	"github.com/romanzzaa/twse-alert-bot/internal/config"
	"github.com/romanzzaa/twse-alert-bot/internal/infrastructure/telegram"
	"github.com/romanzzaa/twse-alert-bot/internal/infrastructure/twse"
	"github.com/romanzzaa/twse-alert-bot/internal/store"
	"github.com/romanzzaa/twse-alert-bot/internal/usecase"
	"github.com/romanzzaa/twse-alert-bot/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tgBot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error("failed to init telegram bot", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tgBot.Debug = false
	logger.Info("Telegram bot authorized", slog.String("username", tgBot.Self.UserName))

	quotes := twse.NewClient(cfg.Quote.BaseURL, cfg.Quote.Timeout)
	notifier := telegram.NewNotifier(tgBot)

	// Все состояние наблюдений живет в памяти процесса и умирает вместе с ним
	watchStore := store.NewWatchStore()

	processor := usecase.NewCommandProcessor(watchStore, quotes, logger)
	scheduler := worker.NewAlertScheduler(watchStore, quotes, notifier, cfg.PollInterval, logger)
	botHandler := bot.NewHandler(tgBot, processor, notifier, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting bot...",
		slog.String("env", cfg.Env),
		slog.String("quote_base_url", cfg.Quote.BaseURL),
		slog.Duration("poll_interval", cfg.PollInterval))

	go scheduler.Run(ctx)
	go botHandler.Start(ctx)

	<-ctx.Done()
	logger.Info("Bot stopped gracefully")
}
