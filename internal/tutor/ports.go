package tutor

import (
	"context"

	"lingua-tutor/internal/difficulty"
	"lingua-tutor/internal/domain"
)

// Backend produces the tutor's next reply. Side-channel data is already parsed.
type Backend interface {
	Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error)
}

// SpeechSynthesizer plays text and blocks until playback finishes or ctx is cancelled.
type SpeechSynthesizer interface {
	Speak(ctx context.Context, text string, voice domain.Voice) error
}

// SpeechRecognizer starts capture and streams transcript updates until ctx is
// cancelled or a final update has been sent. The channel is closed when capture stops.
type SpeechRecognizer interface {
	Listen(ctx context.Context, languageHint string) (<-chan domain.TranscriptUpdate, error)
}

type ProgressStore interface {
	AppendSession(ctx context.Context, s domain.Session) error
	MarkTopicCompleted(ctx context.Context, topicID string) error
	AddLearnedWord(ctx context.Context, word string) error
	AddDifficultPhrase(ctx context.Context, phrase string) error
	RecordGrammarPattern(ctx context.Context, c domain.Correction) error
}

type TurnRecorder interface {
	RecordTurn(ev domain.TurnEvent) error
}

// Hooks are invoked outside the orchestrator lock, so they may call back into it.
type Hooks struct {
	OnMessage    func(domain.Message)
	OnState      func(State)
	OnPartial    func(text string)
	OnAssessment func(difficulty.Adaptation)
	OnTurn       func(domain.TurnEvent)
	OnEnded      func(domain.Session)
}
