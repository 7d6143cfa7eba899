// Package domain holds the data model shared by the tutor components.
package domain

import (
	"errors"
	"time"
)

// ErrSpeechUnsupported is returned by speech services that cannot run on this platform
// or are not configured. Callers degrade to text-only interaction.
var ErrSpeechUnsupported = errors.New("speech service unsupported")

// OpeningToken stands for "begin the conversation" in the first backend request.
const OpeningToken = "[START_CONVERSATION]"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one utterance of the transcript. Messages are never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a single conversation about one topic.
type Session struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	TopicID   string     `json:"topicId,omitempty"`
	Messages  []Message  `json:"messages"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

// Correction is a grammar fix reported by the assistant.
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Rule      string `json:"rule"`
}

// ProgressUpdate lists vocabulary the assistant saw the learner use or struggle with.
type ProgressUpdate struct {
	Learned   []string `json:"learned"`
	Difficult []string `json:"difficult"`
}

// ChatRequest is what the orchestrator sends to the AI backend.
type ChatRequest struct {
	History         []Message `json:"messages"`
	Topic           string    `json:"topic"`
	DifficultyLevel Level     `json:"difficultyLevel"`
}

// ChatReply is the parsed backend response with the side channel already stripped
// from Content.
type ChatReply struct {
	Content     string         `json:"content"`
	Corrections []Correction   `json:"corrections"`
	Progress    ProgressUpdate `json:"progress"`
}

// TranscriptUpdate is one element of a speech recognition stream. Final marks an
// utterance boundary; Err terminates the stream.
type TranscriptUpdate struct {
	Text  string
	Final bool
	Err   error
}

// TurnEvent is the log record of one completed turn.
type TurnEvent struct {
	Timestamp         time.Time `json:"timestamp"`
	SessionID         string    `json:"session_id"`
	Topic             string    `json:"topic"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	Level             Level     `json:"level,omitempty"`
	Signal            string    `json:"signal"`
	Score             float64   `json:"score"`
	Corrections       int       `json:"corrections"`
	Fallback          bool      `json:"fallback"`
	LatencyMS         int64     `json:"latency_ms"`
}
