package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"lingua-tutor/internal/domain"
)

func TestVoiceFor(t *testing.T) {
	cases := []struct {
		accent domain.Accent
		gender domain.VoiceGender
		want   openai.SpeechVoice
	}{
		{domain.AccentAmerican, domain.VoiceFemale, openai.VoiceNova},
		{domain.AccentAmerican, domain.VoiceMale, openai.VoiceOnyx},
		{domain.AccentBritish, domain.VoiceFemale, openai.VoiceFable},
		{domain.AccentBritish, domain.VoiceMale, openai.VoiceEcho},
		{"australian", domain.VoiceMale, openai.VoiceNova},
	}
	for _, tc := range cases {
		if got := VoiceFor(tc.accent, tc.gender); got != tc.want {
			t.Fatalf("%s/%s: got %s want %s", tc.accent, tc.gender, got, tc.want)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	for in, want := range map[float64]float64{0: 1, 0.1: 0.25, 1.5: 1.5, 9: 4} {
		if got := ClampSpeed(in); got != want {
			t.Fatalf("%v: got %v want %v", in, got, want)
		}
	}
}

func TestOpenAITTS_Synthesize(t *testing.T) {
	var req struct {
		Model string  `json:"model"`
		Input string  `json:"input"`
		Voice string  `json:"voice"`
		Speed float64 `json:"speed"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("key")
	cfg.BaseURL = srv.URL + "/v1"
	tts := NewOpenAITTS(cfg, "")
	audio, err := tts.Synthesize(context.Background(), "Hello!", domain.Voice{Accent: domain.AccentBritish, Gender: domain.VoiceMale, Speed: 0.1})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "ID3fake" {
		t.Fatalf("audio: %q", audio)
	}
	if req.Model != "tts-1" || req.Voice != "echo" || req.Speed != 0.25 || req.Input != "Hello!" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if _, err := tts.Synthesize(context.Background(), "  ", domain.Voice{}); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("want ErrEmptyText, got %v", err)
	}
}

func TestWhisperTranscriber(t *testing.T) {
	var lang, model string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("multipart: %v", err)
		}
		lang = r.FormValue("language")
		model = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":" I like cooking. "}`))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("key")
	cfg.BaseURL = srv.URL + "/v1"
	tr := NewWhisperTranscriber(cfg, "")
	text, err := tr.Transcribe(context.Background(), []byte("RIFF"), "speech.wav", "en-US")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "I like cooking." || lang != "en" || model != "whisper-1" {
		t.Fatalf("unexpected: text=%q lang=%q model=%q", text, lang, model)
	}
	if text, err := tr.Transcribe(context.Background(), nil, "x.wav", "en"); err != nil || text != "" {
		t.Fatalf("empty audio: %q %v", text, err)
	}
}

type fakeTTS struct {
	audio []byte
	err   error
}

func (f fakeTTS) Synthesize(context.Context, string, domain.Voice) ([]byte, error) {
	return f.audio, f.err
}

type recordingPlayer struct{ played [][]byte }

func (p *recordingPlayer) Play(_ context.Context, audio []byte) error {
	p.played = append(p.played, audio)
	return nil
}

func TestSpeaker(t *testing.T) {
	var nilSpeaker *Speaker
	if err := nilSpeaker.Speak(context.Background(), "hi", domain.Voice{}); !errors.Is(err, domain.ErrSpeechUnsupported) {
		t.Fatalf("nil speaker: %v", err)
	}
	p := &recordingPlayer{}
	s := &Speaker{TTS: fakeTTS{audio: []byte("mp3")}, Player: p}
	if err := s.Speak(context.Background(), "hi", domain.Voice{}); err != nil {
		t.Fatal(err)
	}
	if len(p.played) != 1 || string(p.played[0]) != "mp3" {
		t.Fatalf("played: %v", p.played)
	}
	s.TTS = fakeTTS{err: errors.New("quota")}
	if err := s.Speak(context.Background(), "hi", domain.Voice{}); err == nil {
		t.Fatalf("expected synthesis error")
	}
}

func TestDiscardPlayerHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (DiscardPlayer{}).Play(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestCommandPlayerAndSource(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	p, err := NewCommandPlayer("cat")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play(context.Background(), []byte("audio")); err != nil {
		t.Fatalf("play: %v", err)
	}
	if _, err := NewCommandPlayer("  "); err == nil {
		t.Fatalf("expected error for empty command")
	}

	src, err := NewCommandSource("echo hello", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	audio, name, err := src.Capture(context.Background())
	if err != nil || string(audio) != "hello\n" || name != "speech.wav" {
		t.Fatalf("capture: %q %q %v", audio, name, err)
	}
}

type fakeSource struct {
	audio []byte
	err   error
	block bool
}

func (f fakeSource) Capture(ctx context.Context) ([]byte, string, error) {
	if f.block {
		<-ctx.Done()
		return nil, "", ctx.Err()
	}
	return f.audio, "speech.wav", f.err
}

type fakeTranscriber struct{ text string }

func (f fakeTranscriber) Transcribe(_ context.Context, audio []byte, _, _ string) (string, error) {
	return f.text, nil
}

func collect(t *testing.T, ch <-chan domain.TranscriptUpdate) []domain.TranscriptUpdate {
	t.Helper()
	var out []domain.TranscriptUpdate
	timeout := time.After(2 * time.Second)
	for {
		select {
		case u, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, u)
		case <-timeout:
			t.Fatalf("stream not closed")
		}
	}
}

func TestRecognizer(t *testing.T) {
	if _, err := (&Recognizer{}).Listen(context.Background(), "en"); !errors.Is(err, domain.ErrSpeechUnsupported) {
		t.Fatalf("unconfigured: %v", err)
	}

	r := &Recognizer{Source: fakeSource{audio: []byte("wav")}, Transcriber: fakeTranscriber{text: "I play chess"}}
	ch, err := r.Listen(context.Background(), "en")
	if err != nil {
		t.Fatal(err)
	}
	got := collect(t, ch)
	if len(got) != 1 || !got[0].Final || got[0].Text != "I play chess" {
		t.Fatalf("updates: %+v", got)
	}

	r.Source = fakeSource{err: errors.New("no microphone")}
	ch, _ = r.Listen(context.Background(), "en")
	if got := collect(t, ch); len(got) != 1 || got[0].Err == nil {
		t.Fatalf("want error update, got %+v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.Source = fakeSource{block: true}
	ch, _ = r.Listen(ctx, "en")
	cancel()
	if got := collect(t, ch); len(got) != 0 {
		t.Fatalf("cancelled capture must emit nothing, got %+v", got)
	}
}
