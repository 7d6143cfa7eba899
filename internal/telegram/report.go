package telegram

import (
	"context"
	"errors"
	"fmt"
)

// SendDailyReport posts yesterday's practice summary (UTC) to the learner.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.turns == nil {
		return errors.New("turn log is not configured")
	}
	day := b.now().UTC().AddDate(0, 0, -1)
	stats := b.dailyStats(day)
	msg := stats.Summary()
	if stats.Turns > 0 {
		msg += fmt.Sprintf("\nSessions saved so far: %d", b.store.Progress(ctx).SessionsCompleted)
	}
	b.sendMessage(b.learnerID, msg)
	b.log.Infow("daily report sent", "date", stats.Date, "turns", stats.Turns)
	return nil
}
