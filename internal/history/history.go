package history

import (
	"sync"

	"lingua-tutor/internal/domain"
)

// Transcript is the append-only message log of one session. Reads return copies so
// callers can never reorder or edit what was said.
type Transcript struct {
	mu       sync.RWMutex
	messages []domain.Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(msg domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Snapshot returns all messages in order.
func (t *Transcript) Snapshot() []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns at most n most recent messages in order. n <= 0 means all.
func (t *Transcript) Last(n int) []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	start := 0
	if n > 0 && len(t.messages) > n {
		start = len(t.messages) - n
	}
	out := make([]domain.Message, len(t.messages)-start)
	copy(out, t.messages[start:])
	return out
}

// LastOf returns the most recent message with the given role.
func (t *Transcript) LastOf(role domain.Role) (domain.Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == role {
			return t.messages[i], true
		}
	}
	return domain.Message{}, false
}
