package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"lingua-tutor/internal/domain"
)

// Source records one utterance.
type Source interface {
	Capture(ctx context.Context) (audio []byte, filename string, err error)
}

// CommandSource runs a recorder that writes audio to stdout, for example
// "sox -q -d -t wav - silence 1 0.1 3% 1 2.0 3%". Recording stops when the
// command exits or after MaxDuration, whichever comes first.
type CommandSource struct {
	name        string
	args        []string
	MaxDuration time.Duration
	Filename    string
}

func NewCommandSource(commandLine string, maxDuration time.Duration) (*CommandSource, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("capture command is empty")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("recorder %q: %w", fields[0], err)
	}
	return &CommandSource{name: fields[0], args: fields[1:], MaxDuration: maxDuration, Filename: "speech.wav"}, nil
}

func (s *CommandSource) Capture(ctx context.Context) ([]byte, string, error) {
	rctx := ctx
	if s.MaxDuration > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, s.MaxDuration)
		defer cancel()
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(rctx, s.name, s.args...)
	cmd.Stdout = &out
	err := cmd.Run()
	switch {
	case ctx.Err() != nil:
		return nil, "", ctx.Err()
	case err != nil && rctx.Err() == nil:
		return nil, "", fmt.Errorf("run recorder: %w", err)
	}
	// a recorder cut off by MaxDuration still produced usable audio
	return out.Bytes(), s.Filename, nil
}

// Recognizer records one utterance, transcribes it and emits a single final update.
type Recognizer struct {
	Source      Source
	Transcriber Transcriber
}

func (r *Recognizer) Listen(ctx context.Context, languageHint string) (<-chan domain.TranscriptUpdate, error) {
	if r == nil || r.Source == nil || r.Transcriber == nil {
		return nil, domain.ErrSpeechUnsupported
	}
	ch := make(chan domain.TranscriptUpdate, 1)
	go func() {
		defer close(ch)
		send := func(u domain.TranscriptUpdate) {
			select {
			case ch <- u:
			case <-ctx.Done():
			}
		}
		audio, name, err := r.Source.Capture(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			send(domain.TranscriptUpdate{Err: err})
			return
		}
		text, err := r.Transcriber.Transcribe(ctx, audio, name, languageHint)
		if err != nil {
			send(domain.TranscriptUpdate{Err: err})
			return
		}
		send(domain.TranscriptUpdate{Text: text, Final: true})
	}()
	return ch, nil
}
