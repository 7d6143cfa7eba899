package tutor

import "errors"

type State int

const (
	StateIdle State = iota
	StateGreeting
	StateAwaitingInput
	StateListening
	StateComposing
	StateSending
	StateAwaitingAIResponse
	StateSpeaking
	StateEnding
	StateEnded
)

var stateNames = map[State]string{
	StateIdle:               "idle",
	StateGreeting:           "greeting",
	StateAwaitingInput:      "awaiting_input",
	StateListening:          "listening",
	StateComposing:          "composing",
	StateSending:            "sending",
	StateAwaitingAIResponse: "awaiting_ai_response",
	StateSpeaking:           "speaking",
	StateEnding:             "ending",
	StateEnded:              "ended",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// acceptsInput reports whether a learner utterance can be taken in this state.
func (s State) acceptsInput() bool {
	switch s {
	case StateAwaitingInput, StateComposing, StateSpeaking, StateListening:
		return true
	}
	return false
}

var (
	ErrEmptyInput     = errors.New("empty input")
	ErrBusy           = errors.New("orchestrator is busy")
	ErrPaused         = errors.New("session is paused")
	ErrSessionEnded   = errors.New("session has ended")
	ErrNotStarted     = errors.New("session not started")
	ErrAlreadyStarted = errors.New("session already started")
)
