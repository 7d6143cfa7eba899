package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/tutor"
)

type session interface {
	SubmitText(ctx context.Context, text string) error
	BeginComposing() error
	StartListening() error
	StopListening(ctx context.Context) error
	Pause() error
	Resume() error
	End(ctx context.Context) (domain.Session, error)
	Close()
}

const replHelp = `Type your answer and press Enter.
  /listen  speak instead of typing
  /stop    stop listening
  /pause   /resume
  /end     finish and save the session
  /quit    leave without saving`

// repl feeds stdin lines to the session until the session ends, the input is
// exhausted or ctx is cancelled.
type repl struct {
	s     session
	out   io.Writer
	ended <-chan struct{}
}

func (r *repl) run(parent context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_, err := r.s.End(context.Background())
			return err
		case <-r.ended:
			return nil
		case line, ok := <-lines:
			if !ok {
				_, err := r.s.End(ctx)
				return err
			}
			if done := r.handle(ctx, strings.TrimSpace(line)); done {
				return nil
			}
		}
	}
}

// handle processes one line and reports whether the loop should stop.
func (r *repl) handle(ctx context.Context, line string) bool {
	var err error
	switch line {
	case "":
		return false
	case "/help":
		fmt.Fprintln(r.out, replHelp)
	case "/listen":
		if err = r.s.StartListening(); err == nil {
			fmt.Fprintln(r.out, "Listening... (/stop to finish)")
		}
	case "/stop":
		err = r.s.StopListening(ctx)
	case "/pause":
		if err = r.s.Pause(); err == nil {
			fmt.Fprintln(r.out, "Paused. /resume to continue.")
		}
	case "/resume":
		err = r.s.Resume()
	case "/end":
		_, err = r.s.End(ctx)
		if err == nil || errors.Is(err, tutor.ErrSessionEnded) {
			return true
		}
	case "/quit":
		r.s.Close()
		fmt.Fprintln(r.out, "Bye! This session was not saved.")
		return true
	default:
		if strings.HasPrefix(line, "/") {
			fmt.Fprintf(r.out, "Unknown command %s. Type /help.\n", line)
			return false
		}
		_ = r.s.BeginComposing()
		err = r.s.SubmitText(ctx, line)
	}
	r.report(err)
	return false
}

func (r *repl) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, tutor.ErrBusy):
		fmt.Fprintln(r.out, "One moment, the tutor is still answering.")
	case errors.Is(err, domain.ErrSpeechUnsupported):
		fmt.Fprintln(r.out, "Voice input is not available. Set CAPTURE_COMMAND and OPENAI_API_KEY to enable it.")
	case errors.Is(err, tutor.ErrPaused):
		fmt.Fprintln(r.out, "The session is paused. /resume first.")
	case errors.Is(err, tutor.ErrSessionEnded):
		fmt.Fprintln(r.out, "The session has ended.")
	default:
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
}
