package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Transcriber turns recorded audio into text. filename carries the container
// format (for example "voice.ogg").
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, languageHint string) (string, error)
}

type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

func NewWhisperTranscriber(cfg openai.ClientConfig, model string) *WhisperTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperTranscriber{client: openai.NewClientWithConfig(cfg), model: model}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename, languageHint string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: isoLanguage(languageHint),
	})
	if err != nil {
		return "", fmt.Errorf("create transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// isoLanguage reduces a BCP 47 tag like "en-US" to the ISO-639-1 code the API takes.
func isoLanguage(hint string) string {
	hint = strings.TrimSpace(hint)
	if i := strings.IndexAny(hint, "-_"); i > 0 {
		hint = hint[:i]
	}
	return strings.ToLower(hint)
}
