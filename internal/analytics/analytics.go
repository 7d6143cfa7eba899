package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"lingua-tutor/internal/difficulty"
	"lingua-tutor/internal/domain"
)

// DailyStats summarizes the learner's turns for one day.
type DailyStats struct {
	Date              string         `json:"date"`
	Turns             int            `json:"turns"`
	Sessions          int            `json:"sessions"`
	Topics            map[string]int `json:"topics"`
	Signals           map[string]int `json:"signals"`
	Levels            map[string]int `json:"levels"`
	Corrections       int            `json:"corrections"`
	Fallbacks         int            `json:"fallbacks"`
	AvgLearnerWords   float64        `json:"avg_learner_words"`
	AvgLatencyMS      int64          `json:"avg_latency_ms"`
	ClosingLevel      string         `json:"closing_level,omitempty"`
	ConfidentTurnRate float64        `json:"confident_turn_rate"`
}

// AnalyzeDailyTurns aggregates events that fall on targetDate in its location.
func AnalyzeDailyTurns(events []domain.TurnEvent, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:    startOfDay.Format("2006-01-02"),
		Topics:  make(map[string]int),
		Signals: make(map[string]int),
		Levels:  make(map[string]int),
	}

	sessions := make(map[string]bool)
	var words int
	var latency int64
	var last time.Time
	for _, ev := range events {
		if ev.Timestamp.Before(startOfDay) || !ev.Timestamp.Before(endOfDay) {
			continue
		}
		// greeting turns carry no learner text
		if strings.TrimSpace(ev.UserMessage) == "" {
			continue
		}
		stats.Turns++
		sessions[ev.SessionID] = true
		if ev.Topic != "" {
			stats.Topics[ev.Topic]++
		}
		if ev.Signal != "" {
			stats.Signals[ev.Signal]++
		}
		if ev.Level != "" {
			stats.Levels[ev.Level.String()]++
			if !ev.Timestamp.Before(last) {
				last = ev.Timestamp
				stats.ClosingLevel = ev.Level.String()
			}
		}
		stats.Corrections += ev.Corrections
		if ev.Fallback {
			stats.Fallbacks++
		}
		words += len(strings.Fields(ev.UserMessage))
		latency += ev.LatencyMS
	}

	stats.Sessions = len(sessions)
	if stats.Turns > 0 {
		stats.AvgLearnerWords = float64(words) / float64(stats.Turns)
		stats.AvgLatencyMS = latency / int64(stats.Turns)
		stats.ConfidentTurnRate = float64(stats.Signals[string(difficulty.SignalConfident)]) / float64(stats.Turns)
	}
	return stats
}

// Summary renders the stats as a short plain-text report.
func (ds *DailyStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Practice report for %s\n\n", ds.Date)
	if ds.Turns == 0 {
		b.WriteString("No practice today. A few minutes of conversation tomorrow keeps the streak going!\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- Turns: %d across %d session(s)\n", ds.Turns, ds.Sessions)
	fmt.Fprintf(&b, "- Average answer length: %.1f words\n", ds.AvgLearnerWords)
	fmt.Fprintf(&b, "- Corrections received: %d\n", ds.Corrections)
	if ds.ClosingLevel != "" {
		fmt.Fprintf(&b, "- Level at the end of the day: %s\n", ds.ClosingLevel)
	}
	if ds.Fallbacks > 0 {
		fmt.Fprintf(&b, "- Tutor hiccups: %d\n", ds.Fallbacks)
	}
	if len(ds.Topics) > 0 {
		b.WriteString("\nTopics:\n")
		for _, k := range sortedKeys(ds.Topics) {
			fmt.Fprintf(&b, "- %s: %d\n", k, ds.Topics[k])
		}
	}
	if len(ds.Signals) > 0 {
		b.WriteString("\nHow it felt:\n")
		for _, k := range sortedKeys(ds.Signals) {
			fmt.Fprintf(&b, "- %s: %d\n", k, ds.Signals[k])
		}
	}
	return b.String()
}

func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
