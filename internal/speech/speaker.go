package speech

import (
	"context"
	"fmt"

	"lingua-tutor/internal/domain"
)

// Speaker synthesizes text and plays it. Cancelling ctx stops playback.
type Speaker struct {
	TTS    Synthesizer
	Player Player
}

func (s *Speaker) Speak(ctx context.Context, text string, voice domain.Voice) error {
	if s == nil || s.TTS == nil || s.Player == nil {
		return domain.ErrSpeechUnsupported
	}
	audio, err := s.TTS.Synthesize(ctx, text, voice)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	return s.Player.Play(ctx, audio)
}
