package domain

import "time"

type Accent string

const (
	AccentAmerican Accent = "american"
	AccentBritish  Accent = "british"
)

type VoiceGender string

const (
	VoiceFemale VoiceGender = "female"
	VoiceMale   VoiceGender = "male"
)

const (
	MinSpeakingSpeed = 0.5
	MaxSpeakingSpeed = 2.0
)

// Settings are chosen by the learner before a session and stay read-only during it.
type Settings struct {
	DifficultyLevel Level       `json:"difficultyLevel"`
	SpeakingSpeed   float64     `json:"speakingSpeed"`
	Accent          Accent      `json:"accent"`
	VoiceGender     VoiceGender `json:"voiceGender"`
}

func DefaultSettings() Settings {
	return Settings{
		DifficultyLevel: LevelA2,
		SpeakingSpeed:   1.0,
		Accent:          AccentAmerican,
		VoiceGender:     VoiceFemale,
	}
}

// Normalize replaces out-of-range values with defaults and clamps the speed.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if !s.DifficultyLevel.Valid() {
		s.DifficultyLevel = def.DifficultyLevel
	}
	switch {
	case s.SpeakingSpeed == 0:
		s.SpeakingSpeed = def.SpeakingSpeed
	case s.SpeakingSpeed < MinSpeakingSpeed:
		s.SpeakingSpeed = MinSpeakingSpeed
	case s.SpeakingSpeed > MaxSpeakingSpeed:
		s.SpeakingSpeed = MaxSpeakingSpeed
	}
	if s.Accent != AccentAmerican && s.Accent != AccentBritish {
		s.Accent = def.Accent
	}
	if s.VoiceGender != VoiceFemale && s.VoiceGender != VoiceMale {
		s.VoiceGender = def.VoiceGender
	}
	return s
}

// Voice returns the playback parameters derived from the settings.
func (s Settings) Voice() Voice {
	return Voice{Accent: s.Accent, Gender: s.VoiceGender, Speed: s.SpeakingSpeed}
}

// Voice selects how assistant text is rendered as audio.
type Voice struct {
	Accent Accent
	Gender VoiceGender
	Speed  float64
}

type WordPractice struct {
	Practiced     int       `json:"practiced"`
	LastPracticed time.Time `json:"lastPracticed"`
}

type GrammarPattern struct {
	Count         int       `json:"count"`
	LastOriginal  string    `json:"lastOriginal"`
	LastCorrected string    `json:"lastCorrected"`
	LastSeen      time.Time `json:"lastSeen"`
}

// Progress accumulates across sessions.
type Progress struct {
	LearnedWords       []string                  `json:"learnedWords"`
	DifficultPhrases   []string                  `json:"difficultPhrases"`
	SessionsCompleted  int                       `json:"sessionsCompleted"`
	LastSessionDate    *time.Time                `json:"lastSessionDate"`
	TopicsCompleted    []string                  `json:"topicsCompleted"`
	VocabularyProgress map[string]WordPractice   `json:"vocabularyProgress"`
	GrammarPatterns    map[string]GrammarPattern `json:"grammarPatterns"`
}

func DefaultProgress() Progress {
	return Progress{
		LearnedWords:       []string{},
		DifficultPhrases:   []string{},
		TopicsCompleted:    []string{},
		VocabularyProgress: map[string]WordPractice{},
		GrammarPatterns:    map[string]GrammarPattern{},
	}
}
