// Package telegram serves one learner over a Telegram chat. Typed messages and
// voice notes drive a tutor session; replies come back as text and, when speech
// synthesis is configured, as voice notes.
package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/speech"
	"lingua-tutor/internal/tutor"
)

// Store is the subset of the progress store the bot needs.
type Store interface {
	tutor.ProgressStore
	Settings(ctx context.Context) domain.Settings
	SaveSettings(ctx context.Context, s domain.Settings) error
	Progress(ctx context.Context) domain.Progress
	SaveCustomTopic(ctx context.Context, name string) error
}

type TurnLog interface {
	tutor.TurnRecorder
	LoadTurns() ([]domain.TurnEvent, error)
}

type Options struct {
	LearnerID int64
	// Session carries the per-session limits; topic and settings are filled in
	// when a session starts.
	Session tutor.Config
}

// Deps are the bot's collaborators. TTS, STT and Turns are optional.
type Deps struct {
	Backend tutor.Backend
	Store   Store
	Turns   TurnLog
	TTS     speech.Synthesizer
	STT     speech.Transcriber
	Logger  *zap.SugaredLogger
}

type Bot struct {
	api   *tgbotapi.BotAPI
	s     sender
	files fileLocator
	http  *http.Client

	learnerID int64
	base      tutor.Config

	backend tutor.Backend
	store   Store
	turns   TurnLog
	tts     speech.Synthesizer
	stt     speech.Transcriber
	log     *zap.SugaredLogger
	now     func() time.Time

	mu      sync.Mutex
	session *tutor.Orchestrator
}

func New(botToken string, opts Options, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b, err := newBot(botAPISender{api: api}, api, opts, deps)
	if err != nil {
		return nil, err
	}
	b.api = api
	return b, nil
}

func newBot(s sender, files fileLocator, opts Options, deps Deps) (*Bot, error) {
	if opts.LearnerID == 0 {
		return nil, errors.New("telegram: learner id is required")
	}
	if deps.Backend == nil || deps.Store == nil {
		return nil, errors.New("telegram: backend and store are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Bot{
		s:         s,
		files:     files,
		http:      &http.Client{Timeout: 30 * time.Second},
		learnerID: opts.LearnerID,
		base:      opts.Session,
		backend:   deps.Backend,
		store:     deps.Store,
		turns:     deps.Turns,
		tts:       deps.TTS,
		stt:       deps.STT,
		log:       logger,
		now:       time.Now,
	}, nil
}

// Start polls for updates until ctx is cancelled. An active session is ended
// and saved on the way out.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	b.log.Infow("telegram bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.Shutdown(context.Background())
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
			}
		}
	}
}

// Shutdown ends the active session, if any.
func (b *Bot) Shutdown(ctx context.Context) {
	if o := b.takeSession(); o != nil {
		if _, err := o.End(ctx); err != nil && !errors.Is(err, tutor.ErrSessionEnded) {
			b.log.Warnw("failed to end session on shutdown", "error", err)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	if msg.From.ID != b.learnerID {
		b.log.Warnw("unauthorized access attempt", "user_id", msg.From.ID, "username", msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "This tutor is private.")
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Voice != nil:
		b.handleVoice(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		b.log.Debugw("incoming message", "chat_id", msg.Chat.ID, "text", msg.Text)
		b.submit(ctx, msg.Chat.ID, msg.Text)
	}
}

func (b *Bot) current() *tutor.Orchestrator {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

func (b *Bot) takeSession() *tutor.Orchestrator {
	b.mu.Lock()
	defer b.mu.Unlock()
	o := b.session
	b.session = nil
	return o
}

// startSession ends any running session and opens a new one on topicArg.
func (b *Bot) startSession(ctx context.Context, chatID int64, topicArg string) {
	if prev := b.takeSession(); prev != nil {
		if _, err := prev.End(ctx); err != nil && !errors.Is(err, tutor.ErrSessionEnded) {
			b.log.Warnw("failed to end previous session", "error", err)
		}
	}

	cfg := b.base
	if t, ok := catalog.FindTopic(topicArg); ok {
		cfg.Topic, cfg.TopicID = t.Name, t.ID
	} else {
		cfg.Topic, cfg.TopicID = topicArg, topicArg
		if err := b.store.SaveCustomTopic(ctx, topicArg); err != nil {
			b.log.Warnw("failed to save custom topic", "topic", topicArg, "error", err)
		}
	}
	cfg.Settings = b.store.Settings(ctx)

	var synth tutor.SpeechSynthesizer
	if b.tts != nil {
		synth = &speech.Speaker{TTS: b.tts, Player: chatPlayer{s: b.s, chatID: chatID}}
	}
	var o *tutor.Orchestrator
	o, err := tutor.New(cfg, tutor.Deps{
		Backend:     b.backend,
		Synthesizer: synth,
		Store:       b.store,
		Turns:       b.turns,
		Logger:      b.log,
		Hooks: tutor.Hooks{
			OnMessage: func(m domain.Message) {
				if m.Role == domain.RoleAssistant {
					b.sendMessage(chatID, m.Content)
				}
			},
			OnEnded: func(s domain.Session) {
				b.mu.Lock()
				if b.session == o {
					b.session = nil
				}
				b.mu.Unlock()
				b.sendMessage(chatID, sessionSummary(s))
			},
		},
	})
	if err != nil {
		b.log.Errorw("failed to create session", "error", err)
		b.sendMessage(chatID, "Sorry, I could not start a session.")
		return
	}

	b.mu.Lock()
	b.session = o
	b.mu.Unlock()

	b.log.Infow("session starting", "topic", cfg.Topic, "level", cfg.Settings.DifficultyLevel)
	if err := o.Start(ctx); err != nil {
		b.log.Errorw("failed to start session", "error", err)
		b.sendMessage(chatID, "Sorry, I could not start a session.")
	}
}

func (b *Bot) submit(ctx context.Context, chatID int64, text string) {
	o := b.current()
	if o == nil {
		b.sendMessage(chatID, "Pick a topic first with /topic <name>.\n\n"+topicList())
		return
	}
	err := o.SubmitText(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, tutor.ErrEmptyInput):
	case errors.Is(err, tutor.ErrBusy):
		b.sendMessage(chatID, "One moment, I'm still working on your last message.")
	case errors.Is(err, tutor.ErrSessionEnded), errors.Is(err, tutor.ErrNotStarted):
		b.sendMessage(chatID, "This session has ended. Start a new one with /topic <name>.")
	default:
		b.log.Errorw("failed to submit message", "error", err)
		b.sendMessage(chatID, "Sorry, something went wrong.")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		b.log.Warnw("failed to send message", "chat_id", chatID, "error", err)
	}
}
