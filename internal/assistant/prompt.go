package assistant

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/domain"
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("system").Parse(promptSource))

var levelGuides = map[domain.Level]string{
	domain.LevelA1: "Beginner level. Use very simple vocabulary, short sentences (5-8 words), basic grammar, and speak slowly. Avoid idioms. Add German translations for most new words.",
	domain.LevelA2: "Elementary level. Use simple vocabulary, short to medium sentences, basic grammar structures. Add German translations for difficult words.",
	domain.LevelB1: "Intermediate level. Use everyday vocabulary, medium-length sentences, and common expressions. Add German translations only for challenging words.",
	domain.LevelB2: "Upper intermediate level. Use varied vocabulary, longer sentences, and some idiomatic expressions. Minimal German translations needed.",
	domain.LevelC1: "Advanced level. Use rich vocabulary, complex sentences, idioms, and nuanced expressions. German translations rarely needed.",
}

type promptData struct {
	Learner      string
	Topic        string
	Level        domain.Level
	LevelGuide   string
	OpeningToken string
	Vocabulary   []catalog.VocabularyItem
}

// BuildSystemPrompt renders the tutor persona for one request.
func BuildSystemPrompt(topic string, level domain.Level, learnerName string, vocabulary []catalog.VocabularyItem) (string, error) {
	if strings.TrimSpace(learnerName) == "" {
		learnerName = "the learner"
	}
	var b strings.Builder
	err := promptTemplate.Execute(&b, promptData{
		Learner:      learnerName,
		Topic:        topic,
		Level:        level,
		LevelGuide:   levelGuides[level],
		OpeningToken: domain.OpeningToken,
		Vocabulary:   vocabulary,
	})
	if err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return b.String(), nil
}
