package main

import (
	"go.uber.org/zap"

	"lingua-tutor/internal/app"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/speech"
	"lingua-tutor/internal/tutor"
)

// voice builds playback and capture from the configured commands. Either side
// is nil when its command or the OpenAI key is missing.
func voice(cfg *config.Config, logger *zap.SugaredLogger) (tutor.SpeechSynthesizer, tutor.SpeechRecognizer) {
	tts, stt := app.Speech(cfg)
	var synth tutor.SpeechSynthesizer
	var rec tutor.SpeechRecognizer

	if tts != nil && cfg.PlayerCommand != "" {
		player, err := speech.NewCommandPlayer(cfg.PlayerCommand)
		if err != nil {
			logger.Warnw("playback disabled", "error", err)
		} else {
			synth = &speech.Speaker{TTS: tts, Player: player}
		}
	}
	if stt != nil && cfg.CaptureCommand != "" {
		src, err := speech.NewCommandSource(cfg.CaptureCommand, cfg.CaptureMaxDuration)
		if err != nil {
			logger.Warnw("voice capture disabled", "error", err)
		} else {
			rec = &speech.Recognizer{Source: src, Transcriber: stt}
		}
	}
	return synth, rec
}
