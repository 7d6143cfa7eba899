// Package app wires configuration into the components shared by the binaries.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"lingua-tutor/internal/assistant"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/llm"
	"lingua-tutor/internal/speech"
	"lingua-tutor/internal/storage"
	"lingua-tutor/internal/tutor"
)

// NewBackend builds the assistant client on top of the configured LLM provider.
func NewBackend(cfg *config.Config, logger *zap.SugaredLogger) (*assistant.Client, error) {
	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return assistant.NewClient(client, cfg.LearnerName, logger.With("component", "assistant")), nil
}

func OpenStore(cfg *config.Config, logger *zap.SugaredLogger) (*storage.Store, error) {
	kv, err := storage.Open(storage.Options{
		Driver:        cfg.StoreDriver,
		Dir:           cfg.StoreDir,
		SQLitePath:    cfg.SQLitePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	return storage.NewStore(kv, logger.With("component", "store")), nil
}

// Speech returns the OpenAI speech services, or nils when no OpenAI key is set.
func Speech(cfg *config.Config) (speech.Synthesizer, speech.Transcriber) {
	if cfg.OpenAIAPIKey == "" {
		return nil, nil
	}
	oc := llm.NewOpenAIConfig(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenRouterReferrer, cfg.OpenRouterTitle)
	return speech.NewOpenAITTS(oc, cfg.TTSModel), speech.NewWhisperTranscriber(oc, cfg.STTModel)
}

// SessionConfig carries the session limits; topic and settings are left to the caller.
func SessionConfig(cfg *config.Config) tutor.Config {
	return tutor.Config{
		HistoryLimit:  cfg.HistoryLimit,
		WindowSize:    cfg.DifficultyWindow,
		ReplyTimeout:  cfg.ReplyTimeout,
		FarewellDelay: cfg.FarewellDelay,
		LanguageHint:  cfg.LanguageHint,
	}
}
