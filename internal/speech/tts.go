// Package speech renders assistant text as audio and turns recorded learner
// audio into text. Both directions go through the OpenAI audio API.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"lingua-tutor/internal/domain"
)

var ErrEmptyText = errors.New("text is required")

const (
	minAPISpeed = 0.25
	maxAPISpeed = 4.0
)

// Synthesizer turns text into encoded audio (mp3).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice domain.Voice) ([]byte, error)
}

var voices = map[domain.Accent]map[domain.VoiceGender]openai.SpeechVoice{
	domain.AccentAmerican: {domain.VoiceFemale: openai.VoiceNova, domain.VoiceMale: openai.VoiceOnyx},
	domain.AccentBritish:  {domain.VoiceFemale: openai.VoiceFable, domain.VoiceMale: openai.VoiceEcho},
}

// VoiceFor picks the OpenAI voice for an accent and gender, defaulting to the
// american female voice.
func VoiceFor(accent domain.Accent, gender domain.VoiceGender) openai.SpeechVoice {
	if byGender, ok := voices[accent]; ok {
		if v, ok := byGender[gender]; ok {
			return v
		}
	}
	return openai.VoiceNova
}

// ClampSpeed keeps speed inside the range the API accepts. Zero means normal speed.
func ClampSpeed(speed float64) float64 {
	switch {
	case speed == 0:
		return 1.0
	case speed < minAPISpeed:
		return minAPISpeed
	case speed > maxAPISpeed:
		return maxAPISpeed
	}
	return speed
}

type OpenAITTS struct {
	client *openai.Client
	model  openai.SpeechModel
}

func NewOpenAITTS(cfg openai.ClientConfig, model string) *OpenAITTS {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	return &OpenAITTS{client: openai.NewClientWithConfig(cfg), model: openai.SpeechModel(model)}
}

func (t *OpenAITTS) Synthesize(ctx context.Context, text string, voice domain.Voice) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	resp, err := t.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          t.model,
		Input:          text,
		Voice:          VoiceFor(voice.Accent, voice.Gender),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          ClampSpeed(voice.Speed),
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()
	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech: %w", err)
	}
	return audio, nil
}
