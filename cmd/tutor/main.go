package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"lingua-tutor/internal/app"
	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/difficulty"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/logging"
	"lingua-tutor/internal/storage"
	"lingua-tutor/internal/tutor"
)

func main() {
	topicFlag := flag.String("topic", "hobbies", "topic id or name; any other text starts a custom topic")
	levelFlag := flag.String("level", "", "difficulty level for this session (A1..C1), defaults to the saved setting")
	textOnly := flag.Bool("text", false, "disable voice playback and capture")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := store.Settings(ctx)
	if *levelFlag != "" {
		lvl, err := domain.ParseLevel(*levelFlag)
		if err != nil {
			log.Fatalf("invalid -level: %v", err)
		}
		settings.DifficultyLevel = lvl
	}

	sc := app.SessionConfig(cfg)
	sc.Settings = settings
	if t, ok := catalog.FindTopic(*topicFlag); ok {
		sc.Topic, sc.TopicID = t.Name, t.ID
	} else {
		sc.Topic = strings.TrimSpace(*topicFlag)
		if err := store.SaveCustomTopic(ctx, sc.Topic); err != nil {
			logger.Warnw("failed to remember custom topic", "error", err)
		}
	}

	deps := tutor.Deps{Backend: backend, Store: store, Turns: turns, Logger: logger}
	if !*textOnly {
		deps.Synthesizer, deps.Recognizer = voice(cfg, logger)
	}

	ended := make(chan struct{})
	lastLevel := settings.DifficultyLevel
	deps.Hooks = tutor.Hooks{
		OnMessage: func(m domain.Message) {
			if m.Role == domain.RoleAssistant {
				fmt.Printf("\nTutor: %s\n\n", m.Content)
			}
		},
		OnPartial: func(text string) {
			fmt.Printf("\r(hearing) %s", text)
		},
		OnAssessment: func(a difficulty.Adaptation) {
			if a.EffectiveLevel != lastLevel {
				fmt.Printf("[level %s -> %s, you sound %s]\n", lastLevel, a.EffectiveLevel, a.Signal)
				lastLevel = a.EffectiveLevel
			}
		},
		OnEnded: func(s domain.Session) {
			fmt.Printf("Session on %q finished with %d messages.\n", s.Topic, len(s.Messages))
			close(ended)
		},
	}

	o, err := tutor.New(sc, deps)
	if err != nil {
		logger.Fatalw("failed to create session", "error", err)
	}
	defer o.Close()

	fmt.Printf("Topic: %s | Level: %s\n%s\n", sc.Topic, settings.DifficultyLevel, replHelp)
	if err := o.Start(ctx); err != nil {
		logger.Fatalw("failed to start session", "error", err)
	}

	r := &repl{s: o, out: os.Stdout, ended: ended}
	if err := r.run(ctx, os.Stdin); err != nil {
		logger.Errorw("session ended with error", "error", err)
	}
}
