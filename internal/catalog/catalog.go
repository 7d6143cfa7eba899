// Package catalog holds the built-in conversation topics and the vocabulary
// suggested for each of them.
package catalog

import (
	"math/rand"
	"strings"

	"lingua-tutor/internal/domain"
)

type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Custom      bool   `json:"custom,omitempty"`
}

type VocabularyItem struct {
	Word    string       `json:"word"`
	German  string       `json:"germanTranslation"`
	Level   domain.Level `json:"difficultyLevel"`
	Example string       `json:"example"`
}

var topics = []Topic{
	{ID: "daily-routines", Name: "Daily Routines", Description: "Talk about your typical day, morning habits, and evening activities", Icon: "🌅"},
	{ID: "hobbies", Name: "Hobbies & Free Time", Description: "Discuss your interests, hobbies, and how you spend your leisure time", Icon: "🎨"},
	{ID: "travel", Name: "Travel & Holidays", Description: "Share travel experiences, dream destinations, and holiday memories", Icon: "✈️"},
	{ID: "food", Name: "Food & Cooking", Description: "Talk about favorite foods, recipes, and dining experiences", Icon: "🍳"},
	{ID: "work", Name: "Work & Career", Description: "Discuss your job, career goals, and workplace experiences", Icon: "💼"},
	{ID: "family", Name: "Family & Relationships", Description: "Talk about family members, friends, and important relationships", Icon: "👨‍👩‍👧‍👦"},
	{ID: "health", Name: "Health & Fitness", Description: "Discuss exercise, wellness, and healthy lifestyle choices", Icon: "🏃"},
	{ID: "entertainment", Name: "Entertainment", Description: "Talk about movies, music, books, and shows you enjoy", Icon: "🎬"},
	{ID: "current-events", Name: "Current Events", Description: "Discuss news, trends, and what is happening in the world", Icon: "📰"},
	{ID: "future-plans", Name: "Dreams & Future Plans", Description: "Share your goals, aspirations, and plans for the future", Icon: "🌟"},
}

// Topics returns the built-in topics in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// FindTopic matches an id or a display name, ignoring case.
func FindTopic(idOrName string) (Topic, bool) {
	key := strings.TrimSpace(idOrName)
	for _, t := range topics {
		if strings.EqualFold(t.ID, key) || strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return Topic{}, false
}

// VocabularyFor returns the items of a topic at or below level. An unknown level
// returns the whole list; an unknown topic returns nil.
func VocabularyFor(topicID string, level domain.Level) []VocabularyItem {
	items, ok := vocabulary[topicID]
	if !ok {
		return nil
	}
	if !level.Valid() {
		return append([]VocabularyItem(nil), items...)
	}
	var out []VocabularyItem
	for _, it := range items {
		if it.Level.Index() <= level.Index() {
			out = append(out, it)
		}
	}
	return out
}

// RandomVocabulary samples up to n items from VocabularyFor.
func RandomVocabulary(topicID string, level domain.Level, n int, rng *rand.Rand) []VocabularyItem {
	items := VocabularyFor(topicID, level)
	if rng == nil {
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	} else {
		rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	}
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}
