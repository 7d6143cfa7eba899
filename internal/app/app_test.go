package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
)

func TestSessionConfigCarriesLimits(t *testing.T) {
	cfg := &config.Config{HistoryLimit: 12, DifficultyWindow: 4, ReplyTimeout: time.Second, FarewellDelay: 2 * time.Second, LanguageHint: "en-GB"}
	got := SessionConfig(cfg)
	if got.HistoryLimit != 12 || got.WindowSize != 4 || got.ReplyTimeout != time.Second || got.LanguageHint != "en-GB" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestNewBackendRequiresKey(t *testing.T) {
	if _, err := NewBackend(&config.Config{LLMProvider: config.ProviderOpenAI}, zap.NewNop().Sugar()); err == nil {
		t.Fatalf("expected error without api key")
	}
	if _, err := NewBackend(&config.Config{LLMProvider: config.ProviderOpenAI, OpenAIAPIKey: "k", OpenAIModel: "m"}, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("backend: %v", err)
	}
}

func TestSpeechNeedsKey(t *testing.T) {
	if tts, stt := Speech(&config.Config{}); tts != nil || stt != nil {
		t.Fatalf("speech services without a key")
	}
	if tts, stt := Speech(&config.Config{OpenAIAPIKey: "k"}); tts == nil || stt == nil {
		t.Fatalf("speech services missing")
	}
}

func TestOpenStore(t *testing.T) {
	store, err := OpenStore(&config.Config{StoreDriver: "sqlite", SQLitePath: t.TempDir() + "/tutor.db"}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	if err := store.SaveSettings(context.Background(), domain.Settings{DifficultyLevel: domain.LevelB1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Settings(context.Background()); got.DifficultyLevel != domain.LevelB1 || got.SpeakingSpeed != 1 {
		t.Fatalf("settings: %+v", got)
	}
	if _, err := OpenStore(&config.Config{StoreDriver: "mongo"}, zap.NewNop().Sugar()); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
