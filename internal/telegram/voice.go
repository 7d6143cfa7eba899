package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram bots may download files up to 20 MB.
const maxVoiceBytes = 20 << 20

// chatPlayer "plays" synthesized speech by posting it to the chat as a voice note.
type chatPlayer struct {
	s      sender
	chatID int64
}

func (p chatPlayer) Play(ctx context.Context, audio []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	voice := tgbotapi.NewVoice(p.chatID, tgbotapi.FileBytes{Name: "reply.mp3", Bytes: audio})
	if _, err := p.s.Send(voice); err != nil {
		return fmt.Errorf("send voice: %w", err)
	}
	return nil
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if b.stt == nil || b.files == nil {
		b.sendMessage(chatID, "I can't listen to voice messages here, please type instead.")
		return
	}
	if b.current() == nil {
		b.sendMessage(chatID, "Pick a topic first with /topic <name>.\n\n"+topicList())
		return
	}
	audio, err := b.downloadFile(ctx, msg.Voice.FileID)
	if err != nil {
		b.log.Errorw("failed to download voice note", "file_id", msg.Voice.FileID, "error", err)
		b.sendMessage(chatID, "Sorry, I couldn't get your voice message.")
		return
	}
	text, err := b.stt.Transcribe(ctx, audio, "voice.ogg", b.base.LanguageHint)
	if err != nil {
		b.log.Errorw("failed to transcribe voice note", "error", err)
		b.sendMessage(chatID, "Sorry, I couldn't understand that voice message.")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		b.sendMessage(chatID, "I didn't hear anything. Could you try again?")
		return
	}
	b.log.Infow("voice note transcribed", "duration", msg.Voice.Duration, "text", text)
	b.sendMessage(chatID, "You said: "+text)
	b.submit(ctx, chatID, text)
}

func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.files.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("file url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
