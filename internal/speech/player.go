package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Player renders encoded audio and returns when playback is over or ctx is done.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// CommandPlayer pipes audio into an external program such as "mpg123 -q -".
type CommandPlayer struct {
	name string
	args []string
}

func NewCommandPlayer(commandLine string) (*CommandPlayer, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("player command is empty")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("player %q: %w", fields[0], err)
	}
	return &CommandPlayer{name: fields[0], args: fields[1:]}, nil
}

func (p *CommandPlayer) Play(ctx context.Context, audio []byte) error {
	cmd := exec.CommandContext(ctx, p.name, p.args...)
	cmd.Stdin = bytes.NewReader(audio)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}

// DiscardPlayer drops audio. It keeps the speak/complete cycle intact when no
// audio device is available.
type DiscardPlayer struct{}

func (DiscardPlayer) Play(ctx context.Context, _ []byte) error { return ctx.Err() }
