// Package tutor runs one conversation session: it owns the transcript, sequences
// listening, backend calls and playback, adapts difficulty after every learner
// message and persists the session exactly once when it ends.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lingua-tutor/internal/difficulty"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/history"
)

const (
	DefaultHistoryLimit  = 20
	DefaultReplyTimeout  = 20 * time.Second
	DefaultFarewellDelay = 3 * time.Second
)

type Config struct {
	Topic    string
	TopicID  string
	Settings domain.Settings

	HistoryLimit  int
	WindowSize    int
	ReplyTimeout  time.Duration
	FarewellDelay time.Duration
	LanguageHint  string
}

func (c Config) withDefaults() Config {
	if c.TopicID == "" {
		c.TopicID = c.Topic
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	if c.WindowSize <= 0 {
		c.WindowSize = difficulty.DefaultWindow
	}
	if c.ReplyTimeout <= 0 {
		c.ReplyTimeout = DefaultReplyTimeout
	}
	if c.FarewellDelay <= 0 {
		c.FarewellDelay = DefaultFarewellDelay
	}
	if c.LanguageHint == "" {
		c.LanguageHint = "en-US"
	}
	c.Settings = c.Settings.Normalize()
	return c
}

// Deps are the collaborators of a session. Only Backend is required; a nil
// synthesizer or recognizer means text-only interaction.
type Deps struct {
	Backend     Backend
	Synthesizer SpeechSynthesizer
	Recognizer  SpeechRecognizer
	Store       ProgressStore
	Turns       TurnRecorder
	Logger      *zap.SugaredLogger
	Hooks       Hooks
}

type timer interface {
	Stop() bool
}

func realAfterFunc(d time.Duration, f func()) timer { return time.AfterFunc(d, f) }

type Orchestrator struct {
	cfg     Config
	backend Backend
	tts     SpeechSynthesizer
	stt     SpeechRecognizer
	store   ProgressStore
	turns   TurnRecorder
	log     *zap.SugaredLogger
	hooks   Hooks

	afterFunc func(time.Duration, func()) timer
	now       func() time.Time
	newID     func() string

	// lifecycle context; cancelled on End and Close
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	paused     bool
	transcript *history.Transcript
	session    domain.Session
	assessment difficulty.Adaptation

	speakCancel  context.CancelFunc
	speakSeq     uint64
	listenCancel context.CancelFunc
	listenSeq    uint64
	partial      string

	endTimer timer
	ended    bool
	closed   bool
	final    domain.Session

	// hook calls collected under the lock, run by unlock
	pending []func()
}

func New(cfg Config, deps Deps) (*Orchestrator, error) {
	if deps.Backend == nil {
		return nil, errors.New("tutor: backend is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("tutor: topic is required")
	}
	cfg = cfg.withDefaults()
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		cfg:        cfg,
		backend:    deps.Backend,
		tts:        deps.Synthesizer,
		stt:        deps.Recognizer,
		store:      deps.Store,
		turns:      deps.Turns,
		hooks:      deps.Hooks,
		afterFunc:  realAfterFunc,
		now:        time.Now,
		newID:      uuid.NewString,
		ctx:        ctx,
		cancel:     cancel,
		transcript: history.NewTranscript(),
	}
	o.session = domain.Session{ID: o.newID(), Topic: cfg.Topic, TopicID: cfg.TopicID}
	o.assessment = difficulty.Adaptation{EffectiveLevel: cfg.Settings.DifficultyLevel, Signal: difficulty.SignalNeutral}
	o.log = logger.With("session_id", o.session.ID, "topic", cfg.Topic)
	return o, nil
}

func (o *Orchestrator) unlock() {
	pending := o.pending
	o.pending = nil
	o.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func (o *Orchestrator) setStateLocked(s State) {
	if o.state == s {
		return
	}
	o.state = s
	if h := o.hooks.OnState; h != nil {
		o.pending = append(o.pending, func() { h(s) })
	}
}

func (o *Orchestrator) appendLocked(role domain.Role, content string) domain.Message {
	msg := domain.Message{ID: o.newID(), Role: role, Content: content, Timestamp: o.now()}
	o.transcript.Append(msg)
	if h := o.hooks.OnMessage; h != nil {
		o.pending = append(o.pending, func() { h(msg) })
	}
	return msg
}

func (o *Orchestrator) reassessLocked() difficulty.Adaptation {
	a := difficulty.Adapt(o.transcript.Snapshot(), o.cfg.Settings.DifficultyLevel, o.cfg.WindowSize)
	o.assessment = a
	if h := o.hooks.OnAssessment; h != nil {
		o.pending = append(o.pending, func() { h(a) })
	}
	return a
}

func (o *Orchestrator) finishedLocked() bool {
	return o.ended || o.closed
}

// Start requests the greeting and speaks it. A failed request falls back to a
// locally built greeting so the session always opens.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.finishedLocked() {
		o.unlock()
		return ErrSessionEnded
	}
	if o.state != StateIdle {
		o.unlock()
		return ErrAlreadyStarted
	}
	o.session.StartedAt = o.now()
	o.setStateLocked(StateGreeting)
	req := domain.ChatRequest{
		History:         []domain.Message{{ID: o.newID(), Role: domain.RoleUser, Content: OpeningToken, Timestamp: o.now()}},
		Topic:           o.cfg.Topic,
		DifficultyLevel: o.cfg.Settings.DifficultyLevel,
	}
	o.unlock()

	reply, err := o.callBackend(ctx, req)
	content := strings.TrimSpace(reply.Content)
	if err != nil || content == "" {
		o.log.Warnw("greeting request failed, using fallback", "error", err)
		content = FallbackGreeting(o.cfg.Topic)
	}

	o.mu.Lock()
	defer o.unlock()
	if o.finishedLocked() {
		return ErrSessionEnded
	}
	o.appendLocked(domain.RoleAssistant, content)
	o.setStateLocked(StateAwaitingInput)
	o.speakLocked(content)
	o.log.Infow("session started", "level", o.cfg.Settings.DifficultyLevel)
	return nil
}

// BeginComposing marks that the learner is typing.
func (o *Orchestrator) BeginComposing() error {
	o.mu.Lock()
	defer o.unlock()
	if o.finishedLocked() {
		return ErrSessionEnded
	}
	switch o.state {
	case StateComposing:
		return nil
	case StateAwaitingInput:
		o.setStateLocked(StateComposing)
		return nil
	case StateIdle:
		return ErrNotStarted
	}
	return ErrBusy
}

// SubmitText sends a typed utterance and blocks until the reply is in the transcript.
// Typing is allowed while the tutor is speaking; an active capture is stopped.
func (o *Orchestrator) SubmitText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyInput
	}
	o.mu.Lock()
	if err := o.checkInputLocked(); err != nil {
		o.unlock()
		return err
	}
	if o.state == StateListening {
		o.stopListeningLocked()
	}
	return o.sendLocked(ctx, text)
}

func (o *Orchestrator) checkInputLocked() error {
	switch {
	case o.finishedLocked() || o.state == StateEnding || o.state == StateEnded:
		return ErrSessionEnded
	case o.state == StateIdle:
		return ErrNotStarted
	case !o.state.acceptsInput():
		return ErrBusy
	}
	return nil
}

// sendLocked runs one turn. It is entered with o.mu held and releases it.
func (o *Orchestrator) sendLocked(ctx context.Context, text string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	userMsg := o.appendLocked(domain.RoleUser, text)
	o.setStateLocked(StateSending)

	if IsEndPhrase(text) {
		o.farewellLocked()
		o.unlock()
		return nil
	}

	// the adaptation must see the message that was just appended
	adaptation := o.reassessLocked()
	req := domain.ChatRequest{
		History:         o.transcript.Last(o.cfg.HistoryLimit),
		Topic:           o.cfg.Topic,
		DifficultyLevel: adaptation.EffectiveLevel,
	}
	o.setStateLocked(StateAwaitingAIResponse)
	sessionID := o.session.ID
	o.unlock()

	started := o.now()
	reply, err := o.callBackend(ctx, req)
	fallback := false
	if err != nil || strings.TrimSpace(reply.Content) == "" {
		o.log.Errorw("reply request failed, using fallback", "error", err, "level", adaptation.EffectiveLevel)
		reply = domain.ChatReply{Content: FallbackReply}
		fallback = true
	}
	reply.Content = strings.TrimSpace(reply.Content)

	o.mu.Lock()
	if o.finishedLocked() {
		o.unlock()
		o.log.Infow("reply dropped, session already ended")
		return ErrSessionEnded
	}
	o.appendLocked(domain.RoleAssistant, reply.Content)
	o.reassessLocked()
	o.setStateLocked(StateAwaitingInput)
	o.speakLocked(reply.Content)
	ev := domain.TurnEvent{
		Timestamp:         o.now(),
		SessionID:         sessionID,
		Topic:             o.cfg.Topic,
		UserMessage:       userMsg.Content,
		AssistantResponse: reply.Content,
		Level:             adaptation.EffectiveLevel,
		Signal:            string(adaptation.Signal),
		Score:             adaptation.AverageScore,
		Corrections:       len(reply.Corrections),
		Fallback:          fallback,
		LatencyMS:         o.now().Sub(started).Milliseconds(),
	}
	if h := o.hooks.OnTurn; h != nil {
		o.pending = append(o.pending, func() { h(ev) })
	}
	o.unlock()

	// progress writes outlive End, which cancels the session context
	o.mergeProgress(context.WithoutCancel(ctx), reply)
	if o.turns != nil {
		if err := o.turns.RecordTurn(ev); err != nil {
			o.log.Warnw("failed to record turn", "error", err)
		}
	}
	o.log.Infow("turn completed", "level", ev.Level, "signal", ev.Signal, "fallback", fallback)
	return nil
}

func (o *Orchestrator) callBackend(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cctx, cancel := context.WithTimeout(ctx, o.cfg.ReplyTimeout)
	defer cancel()
	stop := context.AfterFunc(o.ctx, cancel)
	defer stop()
	reply, err := o.backend.Reply(cctx, req)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("backend reply: %w", err)
	}
	return reply, nil
}

func (o *Orchestrator) mergeProgress(ctx context.Context, reply domain.ChatReply) {
	if o.store == nil {
		return
	}
	for _, w := range reply.Progress.Learned {
		if err := o.store.AddLearnedWord(ctx, w); err != nil {
			o.log.Warnw("failed to save learned word", "word", w, "error", err)
		}
	}
	for _, p := range reply.Progress.Difficult {
		if err := o.store.AddDifficultPhrase(ctx, p); err != nil {
			o.log.Warnw("failed to save difficult phrase", "phrase", p, "error", err)
		}
	}
	for _, c := range reply.Corrections {
		if err := o.store.RecordGrammarPattern(ctx, c); err != nil {
			o.log.Warnw("failed to record grammar pattern", "rule", c.Rule, "error", err)
		}
	}
}

func (o *Orchestrator) farewellLocked() {
	o.appendLocked(domain.RoleAssistant, FarewellMessage)
	o.setStateLocked(StateEnding)
	o.speakLocked(FarewellMessage)
	if o.endTimer != nil {
		o.endTimer.Stop()
	}
	o.endTimer = o.afterFunc(o.cfg.FarewellDelay, func() {
		if _, err := o.End(context.Background()); err != nil && !errors.Is(err, ErrSessionEnded) {
			o.log.Warnw("scheduled end failed", "error", err)
		}
	})
	o.log.Infow("end phrase detected, session ending", "delay", o.cfg.FarewellDelay)
}

// speakLocked replaces any current playback with text. Nothing is played while
// paused; Resume replays the last assistant message instead.
func (o *Orchestrator) speakLocked(text string) {
	o.stopSpeakingLocked()
	if o.tts == nil || o.paused || o.finishedLocked() {
		return
	}
	ctx, cancel := context.WithCancel(o.ctx)
	o.speakSeq++
	seq := o.speakSeq
	o.speakCancel = cancel
	if o.state == StateAwaitingInput {
		o.setStateLocked(StateSpeaking)
	}
	voice := o.cfg.Settings.Voice()
	go func() {
		defer cancel()
		o.mu.Lock()
		superseded := seq != o.speakSeq || ctx.Err() != nil
		o.unlock()
		if superseded {
			return
		}
		err := o.tts.Speak(ctx, text, voice)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case errors.Is(err, domain.ErrSpeechUnsupported):
			o.log.Debugw("speech playback unsupported")
		default:
			o.log.Warnw("speech playback failed", "error", err)
		}
		o.mu.Lock()
		defer o.unlock()
		if seq != o.speakSeq {
			return
		}
		o.speakCancel = nil
		if o.state == StateSpeaking {
			o.setStateLocked(StateAwaitingInput)
		}
	}()
}

func (o *Orchestrator) stopSpeakingLocked() {
	if o.speakCancel != nil {
		o.speakCancel()
		o.speakCancel = nil
	}
	o.speakSeq++
	if o.state == StateSpeaking {
		o.setStateLocked(StateAwaitingInput)
	}
}

// StartListening begins voice capture. If the tutor is speaking, playback is
// cancelled first. Partial results go to Hooks.OnPartial and a final result is
// submitted as the learner's utterance.
func (o *Orchestrator) StartListening() error {
	o.mu.Lock()
	switch {
	case o.finishedLocked() || o.state == StateEnding || o.state == StateEnded:
		o.unlock()
		return ErrSessionEnded
	case o.paused:
		o.unlock()
		return ErrPaused
	}
	switch o.state {
	case StateListening:
		o.unlock()
		return nil
	case StateIdle:
		o.unlock()
		return ErrNotStarted
	case StateAwaitingInput, StateComposing, StateSpeaking:
	default:
		o.unlock()
		return ErrBusy
	}
	if o.stt == nil {
		o.unlock()
		return domain.ErrSpeechUnsupported
	}
	o.stopSpeakingLocked()
	ctx, cancel := context.WithCancel(o.ctx)
	o.listenSeq++
	seq := o.listenSeq
	o.listenCancel = cancel
	o.partial = ""
	o.setStateLocked(StateListening)
	o.unlock()

	updates, err := o.stt.Listen(ctx, o.cfg.LanguageHint)
	if err != nil {
		cancel()
		o.mu.Lock()
		if seq == o.listenSeq {
			o.listenCancel = nil
			if o.state == StateListening {
				o.setStateLocked(StateAwaitingInput)
			}
		}
		o.unlock()
		if !errors.Is(err, domain.ErrSpeechUnsupported) {
			o.log.Warnw("failed to start capture", "error", err)
		}
		return err
	}
	go o.consume(ctx, cancel, seq, updates)
	return nil
}

func (o *Orchestrator) consume(ctx context.Context, cancel context.CancelFunc, seq uint64, updates <-chan domain.TranscriptUpdate) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			switch {
			case !ok:
				o.finishListening(seq, "")
				return
			case u.Err != nil:
				o.log.Warnw("speech recognition failed", "error", u.Err)
				o.mu.Lock()
				if seq == o.listenSeq && o.state == StateListening {
					o.stopListeningLocked()
					o.setStateLocked(StateAwaitingInput)
				}
				o.unlock()
				return
			case u.Final:
				o.finishListening(seq, u.Text)
				return
			}
			o.mu.Lock()
			if seq != o.listenSeq {
				o.unlock()
				return
			}
			o.partial = u.Text
			if h := o.hooks.OnPartial; h != nil {
				text := u.Text
				o.pending = append(o.pending, func() { h(text) })
			}
			o.unlock()
		}
	}
}

// finishListening submits text, or the last partial when text is empty.
func (o *Orchestrator) finishListening(seq uint64, text string) {
	o.mu.Lock()
	if seq != o.listenSeq || o.state != StateListening || o.finishedLocked() {
		o.unlock()
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = strings.TrimSpace(o.partial)
	}
	o.stopListeningLocked()
	if text == "" {
		o.setStateLocked(StateAwaitingInput)
		o.unlock()
		return
	}
	if err := o.sendLocked(o.ctx, text); err != nil && !errors.Is(err, ErrSessionEnded) {
		o.log.Warnw("failed to submit transcript", "error", err)
	}
}

// StopListening ends capture and submits whatever was recognised so far.
func (o *Orchestrator) StopListening(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateListening {
		o.unlock()
		return nil
	}
	text := strings.TrimSpace(o.partial)
	o.stopListeningLocked()
	if text == "" {
		o.setStateLocked(StateAwaitingInput)
		o.unlock()
		return nil
	}
	return o.sendLocked(ctx, text)
}

func (o *Orchestrator) stopListeningLocked() {
	if o.listenCancel != nil {
		o.listenCancel()
		o.listenCancel = nil
	}
	o.listenSeq++
	o.partial = ""
}

// Pause stops playback and capture and keeps new playback from starting.
func (o *Orchestrator) Pause() error {
	o.mu.Lock()
	defer o.unlock()
	if o.finishedLocked() {
		return ErrSessionEnded
	}
	if o.paused {
		return nil
	}
	switch o.state {
	case StateAwaitingInput, StateComposing, StateSpeaking, StateListening:
	case StateIdle:
		return ErrNotStarted
	default:
		return ErrBusy
	}
	o.paused = true
	o.stopSpeakingLocked()
	if o.state == StateListening {
		o.stopListeningLocked()
		o.setStateLocked(StateAwaitingInput)
	}
	o.log.Infow("session paused")
	return nil
}

// Resume lifts the pause and replays the most recent assistant message.
func (o *Orchestrator) Resume() error {
	o.mu.Lock()
	defer o.unlock()
	if o.finishedLocked() {
		return ErrSessionEnded
	}
	if !o.paused {
		return nil
	}
	o.paused = false
	if o.state == StateAwaitingInput || o.state == StateComposing {
		if last, ok := o.transcript.LastOf(domain.RoleAssistant); ok {
			o.speakLocked(last.Content)
		}
	}
	o.log.Infow("session resumed")
	return nil
}

// End finalizes the session and persists it. Only the first call persists;
// later calls return the same session.
func (o *Orchestrator) End(ctx context.Context) (domain.Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	o.mu.Lock()
	if o.endTimer != nil {
		o.endTimer.Stop()
		o.endTimer = nil
	}
	if o.ended {
		s := o.final
		o.unlock()
		return s, nil
	}
	if o.closed {
		o.unlock()
		return domain.Session{}, ErrSessionEnded
	}
	o.ended = true
	o.stopSpeakingLocked()
	o.stopListeningLocked()
	o.cancel()

	endedAt := o.now()
	s := o.session
	s.Messages = o.transcript.Snapshot()
	s.EndedAt = &endedAt
	if s.StartedAt.IsZero() {
		s.StartedAt = endedAt
	}
	o.final = s
	o.setStateLocked(StateEnded)
	if h := o.hooks.OnEnded; h != nil {
		o.pending = append(o.pending, func() { h(s) })
	}
	o.unlock()

	if o.store != nil && len(s.Messages) > 0 {
		if err := o.store.AppendSession(ctx, s); err != nil {
			o.log.Errorw("failed to save session", "error", err)
		}
		if err := o.store.MarkTopicCompleted(ctx, o.cfg.TopicID); err != nil {
			o.log.Errorw("failed to mark topic completed", "error", err)
		}
	}
	o.log.Infow("session ended", "messages", len(s.Messages))
	return s, nil
}

// Close tears the session down without persisting it. A pending scheduled end is
// cancelled and will not fire.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.unlock()
	if o.closed {
		return
	}
	o.closed = true
	if o.endTimer != nil {
		o.endTimer.Stop()
		o.endTimer = nil
	}
	o.stopSpeakingLocked()
	o.stopListeningLocked()
	o.cancel()
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Paused() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.paused
}

func (o *Orchestrator) Messages() []domain.Message {
	return o.transcript.Snapshot()
}

// Assessment is the adaptation computed after the latest transcript change.
func (o *Orchestrator) Assessment() difficulty.Adaptation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.assessment
}

func (o *Orchestrator) Settings() domain.Settings {
	return o.cfg.Settings
}

// Session returns the live session, or the finalized one after End.
func (o *Orchestrator) Session() domain.Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ended {
		return o.final
	}
	s := o.session
	s.Messages = o.transcript.Snapshot()
	return s
}
