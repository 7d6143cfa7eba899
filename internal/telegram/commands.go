package telegram

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lingua-tutor/internal/analytics"
	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/tutor"
)

const helpText = `Hi! I'm your English conversation partner.

/topic <name> - start talking about a topic
/level <A1..C1> - set your level
/speed <0.5..2.0> - set how fast I speak
/accent <american|british>
/voice <female|male>
/pause, /resume - pause or continue the session
/end - finish and save the session
/stats - today's practice
/progress - everything you've learned so far

Say "I'm done" at any time to wrap up.`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())
	b.log.Infow("command received", "command", msg.Command(), "args", args)

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, helpText+"\n\n"+topicList())
	case "topic":
		if args == "" {
			b.sendMessage(chatID, topicList())
			return
		}
		b.startSession(ctx, chatID, args)
	case "level":
		lvl, err := domain.ParseLevel(args)
		if err != nil {
			b.sendMessage(chatID, "Usage: /level A1|A2|B1|B2|C1")
			return
		}
		b.updateSettings(ctx, chatID, func(s *domain.Settings) { s.DifficultyLevel = lvl },
			fmt.Sprintf("Level set to %s.", lvl))
	case "speed":
		v, err := strconv.ParseFloat(strings.ReplaceAll(args, ",", "."), 64)
		if err != nil || v < domain.MinSpeakingSpeed || v > domain.MaxSpeakingSpeed {
			b.sendMessage(chatID, fmt.Sprintf("Usage: /speed <%.1f..%.1f>", domain.MinSpeakingSpeed, domain.MaxSpeakingSpeed))
			return
		}
		b.updateSettings(ctx, chatID, func(s *domain.Settings) { s.SpeakingSpeed = v },
			fmt.Sprintf("Speaking speed set to %.1fx.", v))
	case "accent":
		a := domain.Accent(strings.ToLower(args))
		if a != domain.AccentAmerican && a != domain.AccentBritish {
			b.sendMessage(chatID, "Usage: /accent american|british")
			return
		}
		b.updateSettings(ctx, chatID, func(s *domain.Settings) { s.Accent = a },
			fmt.Sprintf("Accent set to %s.", a))
	case "voice":
		g := domain.VoiceGender(strings.ToLower(args))
		if g != domain.VoiceFemale && g != domain.VoiceMale {
			b.sendMessage(chatID, "Usage: /voice female|male")
			return
		}
		b.updateSettings(ctx, chatID, func(s *domain.Settings) { s.VoiceGender = g },
			fmt.Sprintf("Voice set to %s.", g))
	case "pause":
		b.withSession(chatID, func(o *tutor.Orchestrator) error { return o.Pause() }, "Paused. Send /resume when you're ready.")
	case "resume":
		b.withSession(chatID, func(o *tutor.Orchestrator) error { return o.Resume() }, "Welcome back!")
	case "end":
		o := b.current()
		if o == nil {
			b.sendMessage(chatID, "There is no active session.")
			return
		}
		if _, err := o.End(ctx); err != nil && !errors.Is(err, tutor.ErrSessionEnded) {
			b.log.Errorw("failed to end session", "error", err)
			b.sendMessage(chatID, "Sorry, I could not save the session.")
		}
	case "stats":
		b.sendMessage(chatID, b.dailyStats(b.now()).Summary())
	case "progress":
		b.sendMessage(chatID, formatProgress(b.store.Progress(ctx)))
	default:
		b.sendMessage(chatID, "Unknown command. Send /help for the list.")
	}
}

// updateSettings applies change to the stored settings. A running session keeps
// the settings it started with.
func (b *Bot) updateSettings(ctx context.Context, chatID int64, change func(*domain.Settings), confirm string) {
	s := b.store.Settings(ctx)
	change(&s)
	if err := b.store.SaveSettings(ctx, s); err != nil {
		b.log.Errorw("failed to save settings", "error", err)
		b.sendMessage(chatID, "Sorry, I could not save your settings.")
		return
	}
	if b.current() != nil {
		confirm += " It applies from your next session."
	}
	b.sendMessage(chatID, confirm)
}

func (b *Bot) withSession(chatID int64, fn func(*tutor.Orchestrator) error, confirm string) {
	o := b.current()
	if o == nil {
		b.sendMessage(chatID, "There is no active session.")
		return
	}
	switch err := fn(o); {
	case err == nil:
		b.sendMessage(chatID, confirm)
	case errors.Is(err, tutor.ErrBusy):
		b.sendMessage(chatID, "One moment, I'm still working on your last message.")
	case errors.Is(err, tutor.ErrSessionEnded):
		b.sendMessage(chatID, "This session has ended.")
	default:
		b.sendMessage(chatID, "Sorry, something went wrong.")
	}
}

func (b *Bot) dailyStats(day time.Time) *analytics.DailyStats {
	var events []domain.TurnEvent
	if b.turns != nil {
		var err error
		if events, err = b.turns.LoadTurns(); err != nil {
			b.log.Warnw("failed to load turn log", "error", err)
		}
	}
	return analytics.AnalyzeDailyTurns(events, day)
}

func topicList() string {
	var sb strings.Builder
	sb.WriteString("Topics:\n")
	for _, t := range catalog.Topics() {
		fmt.Fprintf(&sb, "%s %s (/topic %s)\n", t.Icon, t.Name, t.ID)
	}
	sb.WriteString("\nOr name any topic you like, e.g. /topic gardening")
	return sb.String()
}

func sessionSummary(s domain.Session) string {
	var learner int
	for _, m := range s.Messages {
		if m.Role == domain.RoleUser {
			learner++
		}
	}
	if learner == 0 {
		return fmt.Sprintf("Session on %q closed.", s.Topic)
	}
	return fmt.Sprintf("Session on %q saved: %d of your messages. Send /progress to see what you've learned.", s.Topic, learner)
}

func formatProgress(p domain.Progress) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sessions completed: %d\n", p.SessionsCompleted)
	if p.LastSessionDate != nil {
		fmt.Fprintf(&sb, "Last session: %s\n", p.LastSessionDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "Topics covered: %d\n", len(p.TopicsCompleted))
	if len(p.LearnedWords) > 0 {
		fmt.Fprintf(&sb, "\nWords learned (%d): %s\n", len(p.LearnedWords), strings.Join(p.LearnedWords, ", "))
	}
	if len(p.DifficultPhrases) > 0 {
		fmt.Fprintf(&sb, "\nWorth practicing: %s\n", strings.Join(p.DifficultPhrases, "; "))
	}
	if len(p.GrammarPatterns) > 0 {
		rules := make([]string, 0, len(p.GrammarPatterns))
		for r := range p.GrammarPatterns {
			rules = append(rules, r)
		}
		sort.Slice(rules, func(i, j int) bool {
			ci, cj := p.GrammarPatterns[rules[i]].Count, p.GrammarPatterns[rules[j]].Count
			if ci != cj {
				return ci > cj
			}
			return rules[i] < rules[j]
		})
		sb.WriteString("\nGrammar to watch:\n")
		for _, r := range rules {
			gp := p.GrammarPatterns[r]
			fmt.Fprintf(&sb, "- %s (%dx), e.g. %q -> %q\n", r, gp.Count, gp.LastOriginal, gp.LastCorrected)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
