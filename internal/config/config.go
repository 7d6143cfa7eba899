package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	LLMTemperature   float32     `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMMaxTokens     int         `env:"LLM_MAX_TOKENS" envDefault:"500"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Speech
	TTSModel           string        `env:"TTS_MODEL" envDefault:"tts-1"`
	STTModel           string        `env:"STT_MODEL" envDefault:"whisper-1"`
	PlayerCommand      string        `env:"PLAYER_COMMAND"`
	CaptureCommand     string        `env:"CAPTURE_COMMAND"`
	CaptureMaxDuration time.Duration `env:"CAPTURE_MAX_DURATION" envDefault:"15s"`
	LanguageHint       string        `env:"LANGUAGE_HINT" envDefault:"en-US"`

	// Session
	LearnerName      string        `env:"LEARNER_NAME" envDefault:"Learner"`
	ReplyTimeout     time.Duration `env:"REPLY_TIMEOUT" envDefault:"20s"`
	FarewellDelay    time.Duration `env:"FAREWELL_DELAY" envDefault:"3s"`
	HistoryLimit     int           `env:"HISTORY_LIMIT" envDefault:"20"`
	DifficultyWindow int           `env:"DIFFICULTY_WINDOW" envDefault:"3"`

	// Storage
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"file"`
	StoreDir      string `env:"STORE_DIR" envDefault:"data/progress"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/tutor.db"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"tutor:"`
	TurnLogPath   string `env:"TURN_LOG_PATH" envDefault:"data/turns.jsonl"`

	// Telegram
	TelegramBotToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramLearnerID int64  `env:"TELEGRAM_LEARNER_ID"`
	ReportCron        string `env:"REPORT_CRON" envDefault:"0 19 * * *"`

	// HTTP
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load parses the environment. Callers load .env beforehand.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	switch cfg.LLMProvider {
	case ProviderOpenAI, ProviderYandex:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be positive, got %d", cfg.HistoryLimit)
	}
	if cfg.DifficultyWindow <= 0 {
		return nil, fmt.Errorf("DIFFICULTY_WINDOW must be positive, got %d", cfg.DifficultyWindow)
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
