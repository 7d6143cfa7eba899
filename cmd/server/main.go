package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lingua-tutor/internal/app"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/httpapi"
	"lingua-tutor/internal/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
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

	tts, _ := app.Speech(cfg)
	server := httpapi.NewServer(httpapi.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.ReplyTimeout + 10*time.Second,
	}, httpapi.Deps{
		Backend: backend,
		TTS:     tts,
		Store:   store,
		Logger:  logger.With("component", "http"),
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ReplyTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infow("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("HTTP server shutdown error", "error", err)
	}
}
