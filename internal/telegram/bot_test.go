package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/storage"
	"lingua-tutor/internal/tutor"
)

const learner = int64(42)

type fakeSender struct {
	mu     sync.Mutex
	sent   []string
	chats  []int64
	voices int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.sent = append(f.sent, m.Text)
		f.chats = append(f.chats, m.ChatID)
	case tgbotapi.VoiceConfig:
		f.voices++
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeSender) last() string {
	t := f.texts()
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

func (f *fakeSender) voiceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voices
}

type fakeBackend struct {
	mu   sync.Mutex
	reqs []domain.ChatRequest
}

func (f *fakeBackend) Reply(_ context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	last := req.History[len(req.History)-1].Content
	if last == tutor.OpeningToken {
		return domain.ChatReply{Content: "Hello! Let's talk about " + req.Topic + "."}, nil
	}
	return domain.ChatReply{
		Content:  "Nice! " + last,
		Progress: domain.ProgressUpdate{Learned: []string{"itinerary"}},
	}, nil
}

func (f *fakeBackend) lastRequest() domain.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

type fakeTTS struct{}

func (fakeTTS) Synthesize(context.Context, string, domain.Voice) ([]byte, error) {
	return []byte("mp3"), nil
}

type fakeSTT struct{ text string }

func (f fakeSTT) Transcribe(_ context.Context, audio []byte, _, _ string) (string, error) {
	if string(audio) != "ogg-bytes" {
		return "", nil
	}
	return f.text, nil
}

type fakeFiles struct{ url string }

func (f fakeFiles) GetFileDirectURL(string) (string, error) { return f.url, nil }

type harness struct {
	bot     *Bot
	sender  *fakeSender
	backend *fakeBackend
	store   *storage.Store
	turns   *storage.TurnLog
}

func newHarness(t *testing.T, deps Deps, files fileLocator) *harness {
	t.Helper()
	h := &harness{sender: &fakeSender{}, backend: &fakeBackend{}, store: storage.NewStore(storage.NewMemoryKV(), nil)}
	turns, err := storage.NewTurnLog(filepath.Join(t.TempDir(), "turns.jsonl"))
	if err != nil {
		t.Fatalf("turn log: %v", err)
	}
	h.turns = turns
	deps.Backend, deps.Store, deps.Turns = h.backend, h.store, turns
	b, err := newBot(h.sender, files, Options{
		LearnerID: learner,
		Session:   tutor.Config{FarewellDelay: 10 * time.Millisecond},
	}, deps)
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	h.bot = b
	t.Cleanup(func() { b.Shutdown(context.Background()) })
	return h
}

func textMsg(from int64, text string) *tgbotapi.Message {
	m := &tgbotapi.Message{From: &tgbotapi.User{ID: from}, Chat: &tgbotapi.Chat{ID: from}, Text: text}
	if strings.HasPrefix(text, "/") {
		n := strings.IndexByte(text, ' ')
		if n < 0 {
			n = len(text)
		}
		m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: n}}
	}
	return m
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
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

func TestUnauthorizedUserIsRejected(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	h.bot.handleIncomingMessage(context.Background(), textMsg(7, "/topic travel"))
	if h.sender.last() != "This tutor is private." {
		t.Fatalf("unexpected: %v", h.sender.texts())
	}
	if h.bot.current() != nil {
		t.Fatalf("session must not start for strangers")
	}
}

func TestTopicStartsSessionAndRepliesFlow(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	ctx := context.Background()

	h.bot.handleIncomingMessage(ctx, textMsg(learner, "/topic travel"))
	if got := h.sender.last(); got != "Hello! Let's talk about Travel & Holidays." {
		t.Fatalf("greeting: %v", h.sender.texts())
	}

	h.bot.handleIncomingMessage(ctx, textMsg(learner, "I went to Rome last summer"))
	if got := h.sender.last(); got != "Nice! I went to Rome last summer" {
		t.Fatalf("reply: %v", h.sender.texts())
	}
	if req := h.backend.lastRequest(); req.Topic != "Travel & Holidays" || len(req.History) != 2 {
		t.Fatalf("request: %+v", req)
	}
	if p := h.store.Progress(ctx); len(p.LearnedWords) != 1 {
		t.Fatalf("progress not merged: %+v", p)
	}

	h.bot.handleIncomingMessage(ctx, textMsg(learner, "/end"))
	if !strings.Contains(h.sender.last(), "saved: 1 of your messages") {
		t.Fatalf("summary: %v", h.sender.texts())
	}
	if h.bot.current() != nil {
		t.Fatalf("session should be cleared after /end")
	}
	if s := h.store.Sessions(ctx); len(s) != 1 || s[0].TopicID != "travel" {
		t.Fatalf("sessions: %+v", s)
	}
	if p := h.store.Progress(ctx); len(p.TopicsCompleted) != 1 || p.TopicsCompleted[0] != "travel" {
		t.Fatalf("topic not completed: %+v", p.TopicsCompleted)
	}
}

func TestTextWithoutSessionAsksForTopic(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	h.bot.handleIncomingMessage(context.Background(), textMsg(learner, "hello"))
	if !strings.HasPrefix(h.sender.last(), "Pick a topic first") {
		t.Fatalf("unexpected: %v", h.sender.texts())
	}
}

func TestEndPhraseSavesSessionAfterFarewell(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	ctx := context.Background()
	h.bot.handleIncomingMessage(ctx, textMsg(learner, "/topic gardening"))
	h.bot.handleIncomingMessage(ctx, textMsg(learner, "I'm done for today"))
	if !contains(h.sender.texts(), tutor.FarewellMessage) {
		t.Fatalf("farewell: %v", h.sender.texts())
	}
	waitFor(t, "session saved", func() bool { return len(h.store.Sessions(ctx)) == 1 })
	waitFor(t, "session cleared", func() bool { return h.bot.current() == nil })
	if s := h.store.Sessions(ctx)[0]; s.TopicID != "gardening" {
		t.Fatalf("custom topic id: %+v", s)
	}
	if topics := h.store.CustomTopics(ctx); len(topics) != 1 || topics[0] != "gardening" {
		t.Fatalf("custom topic not saved: %v", topics)
	}
}

func TestSettingsCommands(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	ctx := context.Background()

	for _, c := range []struct {
		cmd  string
		want string
	}{
		{"/level b2", "Level set to B2."},
		{"/level Z9", "Usage: /level A1|A2|B1|B2|C1"},
		{"/speed 1,5", "Speaking speed set to 1.5x."},
		{"/speed 3", "Usage: /speed <0.5..2.0>"},
		{"/accent British", "Accent set to british."},
		{"/voice robot", "Usage: /voice female|male"},
		{"/voice male", "Voice set to male."},
	} {
		h.bot.handleIncomingMessage(ctx, textMsg(learner, c.cmd))
		if got := h.sender.last(); got != c.want {
			t.Fatalf("%s: got %q want %q", c.cmd, got, c.want)
		}
	}
	want := domain.Settings{DifficultyLevel: domain.LevelB2, SpeakingSpeed: 1.5, Accent: domain.AccentBritish, VoiceGender: domain.VoiceMale}
	if got := h.store.Settings(ctx); got != want {
		t.Fatalf("settings: %+v", got)
	}

	// the next session starts at the stored level
	h.bot.handleIncomingMessage(ctx, textMsg(learner, "/topic food"))
	if req := h.backend.lastRequest(); req.DifficultyLevel != domain.LevelB2 {
		t.Fatalf("level not applied: %+v", req)
	}
	h.bot.handleIncomingMessage(ctx, textMsg(learner, "/level A1"))
	if !strings.HasSuffix(h.sender.last(), "It applies from your next session.") {
		t.Fatalf("unexpected: %q", h.sender.last())
	}
}

func TestPauseResumeWithoutSession(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	h.bot.handleIncomingMessage(context.Background(), textMsg(learner, "/pause"))
	if h.sender.last() != "There is no active session." {
		t.Fatalf("unexpected: %v", h.sender.texts())
	}
	h.bot.handleIncomingMessage(context.Background(), textMsg(learner, "/topic work"))
	h.bot.handleIncomingMessage(context.Background(), textMsg(learner, "/pause"))
	if !h.bot.current().Paused() {
		t.Fatalf("session should be paused")
	}
	h.bot.handleIncomingMessage(context.Background(), textMsg(learner, "/resume"))
	if h.bot.current().Paused() || h.sender.last() != "Welcome back!" {
		t.Fatalf("resume failed: %v", h.sender.texts())
	}
}

func TestRepliesAreSentAsVoiceNotes(t *testing.T) {
	h := newHarness(t, Deps{TTS: fakeTTS{}}, nil)
	h.bot.handleIncomingMessage(context.Background(), textMsg(learner, "/topic hobbies"))
	waitFor(t, "greeting voice note", func() bool { return h.sender.voiceCount() == 1 })
}

func TestVoiceNoteIsTranscribedAndSubmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ogg-bytes"))
	}))
	defer srv.Close()

	h := newHarness(t, Deps{STT: fakeSTT{text: "I like hiking"}}, fakeFiles{url: srv.URL})
	ctx := context.Background()
	h.bot.handleIncomingMessage(ctx, textMsg(learner, "/topic hobbies"))

	voice := &tgbotapi.Message{From: &tgbotapi.User{ID: learner}, Chat: &tgbotapi.Chat{ID: learner}, Voice: &tgbotapi.Voice{FileID: "f1", Duration: 2}}
	h.bot.handleIncomingMessage(ctx, voice)

	texts := h.sender.texts()
	if len(texts) < 2 || texts[len(texts)-2] != "You said: I like hiking" {
		t.Fatalf("transcript echo missing: %v", texts)
	}
	if req := h.backend.lastRequest(); req.History[len(req.History)-1].Content != "I like hiking" {
		t.Fatalf("transcript not submitted: %+v", req)
	}
}

func TestVoiceNoteWithoutTranscriber(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	voice := &tgbotapi.Message{From: &tgbotapi.User{ID: learner}, Chat: &tgbotapi.Chat{ID: learner}, Voice: &tgbotapi.Voice{FileID: "f1"}}
	h.bot.handleIncomingMessage(context.Background(), voice)
	if !strings.Contains(h.sender.last(), "please type instead") {
		t.Fatalf("unexpected: %v", h.sender.texts())
	}
}

func TestDailyReportCoversYesterday(t *testing.T) {
	h := newHarness(t, Deps{}, nil)
	now := time.Date(2024, 5, 2, 19, 0, 0, 0, time.UTC)
	h.bot.now = func() time.Time { return now }
	_ = h.turns.RecordTurn(domain.TurnEvent{Timestamp: now.AddDate(0, 0, -1), SessionID: "s", Topic: "Travel", UserMessage: "hi there", Level: domain.LevelA2})
	_ = h.turns.RecordTurn(domain.TurnEvent{Timestamp: now, SessionID: "t", Topic: "Food", UserMessage: "today"})

	if err := h.bot.SendDailyReport(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	got := h.sender.last()
	if !strings.Contains(got, "2024-05-01") || !strings.Contains(got, "Travel") || strings.Contains(got, "Food") {
		t.Fatalf("report: %s", got)
	}
	h.sender.mu.Lock()
	chat := h.sender.chats[len(h.sender.chats)-1]
	h.sender.mu.Unlock()
	if chat != learner {
		t.Fatalf("report sent to %d", chat)
	}
}
