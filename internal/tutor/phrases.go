package tutor

import (
	"fmt"
	"strings"

	"lingua-tutor/internal/domain"
)

// OpeningToken is sent once to open the conversation and is never stored in the
// transcript.
const OpeningToken = domain.OpeningToken

const (
	FallbackReply   = "That sounds interesting! Can you tell me more about that? Please describe it in a few sentences."
	FarewellMessage = "Thank you for the lovely conversation! You did a great job today. See you next time!"
)

var endPhrases = []string{
	"i am done",
	"i'm done",
	"that is enough",
	"that's enough",
	"let's stop here",
	"end the session",
}

// IsEndPhrase reports whether the utterance asks to finish the session.
func IsEndPhrase(text string) bool {
	t := strings.ToLower(strings.Join(strings.Fields(text), " "))
	t = strings.ReplaceAll(t, "’", "'")
	for _, p := range endPhrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// FallbackGreeting is used when the opening request fails.
func FallbackGreeting(topic string) string {
	return fmt.Sprintf("Hello! I am excited to talk with you about \"%s\". Let us have a nice conversation. "+
		"What do you usually do when you think about %s? Please answer in one or two sentences.",
		topic, strings.ToLower(topic))
}
