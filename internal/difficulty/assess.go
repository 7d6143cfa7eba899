// Package difficulty scores learner utterances and turns the scores into a level
// recommendation for the next assistant reply.
package difficulty

import "strings"

type Signal string

const (
	SignalConfident  Signal = "confident"
	SignalStruggling Signal = "struggling"
	SignalNeutral    Signal = "neutral"
)

// Signal thresholds are looser than the level shift thresholds in Adapt.
const (
	confidentThreshold  = 0.25
	strugglingThreshold = -0.25
)

var strugglePhrases = []string{
	"i don't understand",
	"i don't know",
	"what does",
	"what is",
	"can you explain",
	"too difficult",
	"too hard",
	"i can't",
	"help me",
	"sorry",
	"i mean",
	"how do you say",
}

var confidenceConnectors = []string{
	"actually",
	"in my opinion",
	"on the other hand",
	"for example",
	"in addition",
	"however",
	"moreover",
	"although",
	"because",
	"therefore",
	"furthermore",
	"nevertheless",
}

// Assessment is the score of a single utterance, in [-1, 1].
type Assessment struct {
	Signal Signal  `json:"signal"`
	Score  float64 `json:"score"`
}

// Assess scores one learner utterance. It is pure: the result depends only on the
// lower-cased, whitespace-normalized text.
func Assess(utterance string) Assessment {
	words := strings.Fields(strings.ToLower(utterance))
	text := strings.Join(words, " ")

	score := lengthScore(len(words))

	for _, p := range strugglePhrases {
		if strings.Contains(text, p) {
			score -= 0.5
			break
		}
	}

	hits := 0
	for _, c := range confidenceConnectors {
		if strings.Contains(text, c) {
			hits++
		}
	}
	switch {
	case hits >= 2:
		score += 0.6
	case hits == 1:
		score += 0.3
	}

	score = clamp(score, -1, 1)
	return Assessment{Signal: classify(score), Score: score}
}

func lengthScore(wordCount int) float64 {
	switch {
	case wordCount <= 2:
		return -0.6
	case wordCount <= 5:
		return -0.2
	case wordCount >= 25:
		return 0.5
	case wordCount >= 15:
		return 0.3
	default:
		return 0
	}
}

func classify(score float64) Signal {
	switch {
	case score >= confidentThreshold:
		return SignalConfident
	case score <= strugglingThreshold:
		return SignalStruggling
	default:
		return SignalNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
