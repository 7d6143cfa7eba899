package tutor

import (
	"context"
	"sync"
	"testing"
	"time"

	"lingua-tutor/internal/domain"
)

type fakeBackend struct {
	mu    sync.Mutex
	reqs  []domain.ChatRequest
	reply func(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error)
}

func (f *fakeBackend) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	fn := f.reply
	f.mu.Unlock()
	if fn == nil {
		return domain.ChatReply{Content: "reply " + req.History[len(req.History)-1].Content}, nil
	}
	return fn(ctx, req)
}

func (f *fakeBackend) requests() []domain.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ChatRequest, len(f.reqs))
	copy(out, f.reqs)
	return out
}

type fakeSynth struct {
	mu        sync.Mutex
	spoken    []string
	block     bool
	cancelled int
}

// Speak ignores calls whose context is already cancelled, like a real player.
func (f *fakeSynth) Speak(ctx context.Context, text string, _ domain.Voice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	block := f.block
	f.mu.Unlock()
	if !block {
		return nil
	}
	<-ctx.Done()
	f.mu.Lock()
	f.cancelled++
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeSynth) snapshot() ([]string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...), f.cancelled
}

type fakeRecognizer struct {
	mu      sync.Mutex
	ch      chan domain.TranscriptUpdate
	ctx     context.Context
	started int
}

func (f *fakeRecognizer) Listen(ctx context.Context, _ string) (<-chan domain.TranscriptUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	f.ch = make(chan domain.TranscriptUpdate, 4)
	f.ctx = ctx
	return f.ch, nil
}

func (f *fakeRecognizer) send(u domain.TranscriptUpdate) {
	f.mu.Lock()
	ch := f.ch
	f.mu.Unlock()
	ch <- u
}

type fakeStore struct {
	mu        sync.Mutex
	sessions  []domain.Session
	topics    []string
	learned   []string
	difficult []string
	grammar   []domain.Correction
}

func (f *fakeStore) AppendSession(_ context.Context, s domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeStore) MarkTopicCompleted(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, id)
	return nil
}

func (f *fakeStore) AddLearnedWord(_ context.Context, w string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.learned = append(f.learned, w)
	return nil
}

func (f *fakeStore) AddDifficultPhrase(_ context.Context, p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.difficult = append(f.difficult, p)
	return nil
}

func (f *fakeStore) RecordGrammarPattern(_ context.Context, c domain.Correction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grammar = append(f.grammar, c)
	return nil
}

type fakeTurns struct {
	mu     sync.Mutex
	events []domain.TurnEvent
}

func (f *fakeTurns) RecordTurn(ev domain.TurnEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

type manualTimer struct {
	mu      sync.Mutex
	d       time.Duration
	f       func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimer) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

type timerLog struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (l *timerLog) all() []*manualTimer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*manualTimer(nil), l.timers...)
}

func newTestOrchestrator(t *testing.T, cfg Config, deps Deps) (*Orchestrator, *timerLog) {
	t.Helper()
	if cfg.Topic == "" {
		cfg.Topic = "Hobbies"
		cfg.TopicID = "hobbies"
	}
	o, err := New(cfg, deps)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	tl := &timerLog{}
	o.afterFunc = func(d time.Duration, f func()) timer {
		mt := &manualTimer{d: d, f: f}
		tl.mu.Lock()
		tl.timers = append(tl.timers, mt)
		tl.mu.Unlock()
		return mt
	}
	t.Cleanup(o.Close)
	return o, tl
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
