package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/tutor"
)

type fakeSession struct {
	calls     []string
	listenErr error
	ended     int
	closed    bool
}

func (f *fakeSession) SubmitText(_ context.Context, text string) error {
	f.calls = append(f.calls, "submit:"+text)
	return nil
}
func (f *fakeSession) BeginComposing() error {
	f.calls = append(f.calls, "compose")
	return nil
}
func (f *fakeSession) StartListening() error {
	f.calls = append(f.calls, "listen")
	return f.listenErr
}
func (f *fakeSession) StopListening(context.Context) error {
	f.calls = append(f.calls, "stop")
	return nil
}
func (f *fakeSession) Pause() error {
	f.calls = append(f.calls, "pause")
	return nil
}
func (f *fakeSession) Resume() error {
	f.calls = append(f.calls, "resume")
	return nil
}
func (f *fakeSession) End(context.Context) (domain.Session, error) {
	f.ended++
	return domain.Session{}, nil
}
func (f *fakeSession) Close() { f.closed = true }

func TestREPL_DispatchesLines(t *testing.T) {
	fs := &fakeSession{}
	var out bytes.Buffer
	r := &repl{s: fs, out: &out, ended: make(chan struct{})}

	in := strings.NewReader("hello there\n\n/listen\n/stop\n/pause\n/resume\n/bogus\n/end\nnever read\n")
	if err := r.run(context.Background(), in); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"compose", "submit:hello there", "listen", "stop", "pause", "resume"}
	if strings.Join(fs.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls: %v", fs.calls)
	}
	if fs.ended != 1 || fs.closed {
		t.Fatalf("ended=%d closed=%v", fs.ended, fs.closed)
	}
	if !strings.Contains(out.String(), "Unknown command /bogus") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestREPL_QuitDoesNotSave(t *testing.T) {
	fs := &fakeSession{}
	var out bytes.Buffer
	r := &repl{s: fs, out: &out, ended: make(chan struct{})}
	if err := r.run(context.Background(), strings.NewReader("/quit\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if fs.ended != 0 || !fs.closed {
		t.Fatalf("ended=%d closed=%v", fs.ended, fs.closed)
	}
}

func TestREPL_EOFEndsSession(t *testing.T) {
	fs := &fakeSession{}
	r := &repl{s: fs, out: &bytes.Buffer{}, ended: make(chan struct{})}
	if err := r.run(context.Background(), strings.NewReader("hi\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if fs.ended != 1 {
		t.Fatalf("session should be saved at end of input")
	}
}

func TestREPL_ReportsUnavailableVoice(t *testing.T) {
	fs := &fakeSession{listenErr: domain.ErrSpeechUnsupported}
	var out bytes.Buffer
	r := &repl{s: fs, out: &out, ended: make(chan struct{})}
	r.handle(context.Background(), "/listen")
	if !strings.Contains(out.String(), "Voice input is not available") {
		t.Fatalf("output: %q", out.String())
	}
	out.Reset()
	r.report(tutor.ErrBusy)
	if !strings.Contains(out.String(), "still answering") {
		t.Fatalf("output: %q", out.String())
	}
}
