package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"lingua-tutor/internal/app"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/logging"
	"lingua-tutor/internal/scheduler"
	"lingua-tutor/internal/storage"
	"lingua-tutor/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	if cfg.TelegramBotToken == "" || cfg.TelegramLearnerID == 0 {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_LEARNER_ID are required")
	}
	logger := logging.Must(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	backend, err := app.NewBackend(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to create backend", "error", err)
	}
	store, err := app.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to open store", "error", err)
	}
	defer store.Close()
	turns, err := storage.NewTurnLog(cfg.TurnLogPath)
	if err != nil {
		logger.Fatalw("failed to open turn log", "error", err)
	}

	tts, stt := app.Speech(cfg)
	bot, err := telegram.New(cfg.TelegramBotToken, telegram.Options{
		LearnerID: cfg.TelegramLearnerID,
		Session:   app.SessionConfig(cfg),
	}, telegram.Deps{
		Backend: backend,
		Store:   store,
		Turns:   turns,
		TTS:     tts,
		STT:     stt,
		Logger:  logger.With("component", "telegram"),
	})
	if err != nil {
		logger.Fatalw("failed to create bot", "error", err)
	}

	sched := scheduler.New(cfg.ReportCron, logger.With("component", "scheduler"))
	sched.SetReportFunction(bot.SendDailyReport)
	if err := sched.Start(); err != nil {
		logger.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	bot.Start(ctx)
}
