package difficulty

import "lingua-tutor/internal/domain"

// DefaultWindow is the number of recent learner messages Adapt looks at.
const DefaultWindow = 3

// A level only moves when the window average clears these bounds.
const (
	shiftUpThreshold   = 0.35
	shiftDownThreshold = -0.35
)

// Adaptation is the effective level for the next request plus the signal shown to
// the learner. It is derived from the transcript and never persisted.
type Adaptation struct {
	EffectiveLevel domain.Level `json:"effectiveLevel"`
	Signal         Signal       `json:"signal"`
	AverageScore   float64      `json:"averageScore"`
	Sampled        int          `json:"sampled"`
}

// Adapt averages the scores of the last window learner messages and moves the level
// at most one step away from current. Assistant messages are ignored.
func Adapt(messages []domain.Message, current domain.Level, window int) Adaptation {
	if window <= 0 {
		window = DefaultWindow
	}

	var recent []domain.Message
	for i := len(messages) - 1; i >= 0 && len(recent) < window; i-- {
		if messages[i].Role == domain.RoleUser {
			recent = append(recent, messages[i])
		}
	}
	if len(recent) == 0 {
		return Adaptation{EffectiveLevel: current, Signal: SignalNeutral}
	}

	var sum float64
	for _, m := range recent {
		sum += Assess(m.Content).Score
	}
	avg := sum / float64(len(recent))

	effective := current
	if current.Valid() {
		switch {
		case avg >= shiftUpThreshold:
			effective = current.Up()
		case avg <= shiftDownThreshold:
			effective = current.Down()
		}
	}

	return Adaptation{
		EffectiveLevel: effective,
		Signal:         classify(avg),
		AverageScore:   avg,
		Sampled:        len(recent),
	}
}
