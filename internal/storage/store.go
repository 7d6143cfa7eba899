package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lingua-tutor/internal/domain"
)

const (
	keySettings     = "settings"
	keyProgress     = "progress"
	keySessions     = "sessions"
	keyCustomTopics = "custom_topics"
)

// Store implements the learner's progress persistence on top of a KV.
// Getters never fail: a missing value yields defaults, a corrupted one is
// deleted and yields defaults. Updates abort when the current value cannot be
// read, so a backend hiccup never overwrites saved data with defaults.
type Store struct {
	kv  KV
	log *zap.SugaredLogger
	now func() time.Time

	// serializes read-modify-write cycles
	mu sync.Mutex
}

func NewStore(kv KV, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{kv: kv, log: logger, now: time.Now}
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// load decodes key into v. It reports false when defaults should be used and
// an error when the backend could not be read.
func (s *Store) load(ctx context.Context, key string, v any) (bool, error) {
	b, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.log.Warnw("corrupted value cleared", "key", key, "error", err)
		if derr := s.kv.Delete(ctx, key); derr != nil {
			s.log.Warnw("failed to clear corrupted value", "key", key, "error", derr)
		}
		return false, nil
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Put(ctx, key, b)
}

func (s *Store) Settings(ctx context.Context) domain.Settings {
	var st domain.Settings
	ok, err := s.load(ctx, keySettings, &st)
	if err != nil {
		s.log.Warnw("failed to read settings", "error", err)
	}
	if !ok {
		return domain.DefaultSettings()
	}
	return st.Normalize()
}

func (s *Store) SaveSettings(ctx context.Context, st domain.Settings) error {
	return s.save(ctx, keySettings, st.Normalize())
}

func (s *Store) Progress(ctx context.Context) domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.progressLocked(ctx)
	if err != nil {
		s.log.Warnw("failed to read progress", "error", err)
	}
	return p
}

func (s *Store) progressLocked(ctx context.Context) (domain.Progress, error) {
	p := domain.DefaultProgress()
	ok, err := s.load(ctx, keyProgress, &p)
	if !ok {
		return domain.DefaultProgress(), err
	}
	def := domain.DefaultProgress()
	if p.LearnedWords == nil {
		p.LearnedWords = def.LearnedWords
	}
	if p.DifficultPhrases == nil {
		p.DifficultPhrases = def.DifficultPhrases
	}
	if p.TopicsCompleted == nil {
		p.TopicsCompleted = def.TopicsCompleted
	}
	if p.VocabularyProgress == nil {
		p.VocabularyProgress = def.VocabularyProgress
	}
	if p.GrammarPatterns == nil {
		p.GrammarPatterns = def.GrammarPatterns
	}
	return p, nil
}

func (s *Store) SaveProgress(ctx context.Context, p domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, keyProgress, p)
}

// updateProgress applies fn and saves only when fn reports a change.
func (s *Store) updateProgress(ctx context.Context, fn func(p *domain.Progress) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.progressLocked(ctx)
	if err != nil {
		return err
	}
	if !fn(&p) {
		return nil
	}
	return s.save(ctx, keyProgress, p)
}

func (s *Store) Sessions(ctx context.Context) []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.sessionsLocked(ctx)
	if err != nil {
		s.log.Warnw("failed to read sessions", "error", err)
	}
	return sessions
}

func (s *Store) sessionsLocked(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	ok, err := s.load(ctx, keySessions, &sessions)
	if !ok || sessions == nil {
		return []domain.Session{}, err
	}
	return sessions, nil
}

// AppendSession stores a session, replacing any earlier copy with the same id,
// and refreshes the completed-session counters.
func (s *Store) AppendSession(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.sessionsLocked(ctx)
	if err != nil {
		return err
	}
	p, err := s.progressLocked(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}
	if err := s.save(ctx, keySessions, sessions); err != nil {
		return err
	}

	p.SessionsCompleted = len(sessions)
	now := s.now()
	p.LastSessionDate = &now
	return s.save(ctx, keyProgress, p)
}

func (s *Store) MarkTopicCompleted(ctx context.Context, topicID string) error {
	topicID = strings.TrimSpace(topicID)
	if topicID == "" {
		return nil
	}
	return s.updateProgress(ctx, func(p *domain.Progress) bool {
		var added bool
		p.TopicsCompleted, added = appendUnique(p.TopicsCompleted, topicID)
		return added
	})
}

// AddLearnedWord records a word the learner used correctly and counts it as practiced.
func (s *Store) AddLearnedWord(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	return s.updateProgress(ctx, func(p *domain.Progress) bool {
		p.LearnedWords, _ = appendUnique(p.LearnedWords, word)
		practice(p, word, s.now())
		return true
	})
}

func (s *Store) AddDifficultPhrase(ctx context.Context, phrase string) error {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil
	}
	return s.updateProgress(ctx, func(p *domain.Progress) bool {
		var added bool
		p.DifficultPhrases, added = appendUnique(p.DifficultPhrases, phrase)
		return added
	})
}

// PracticeWord bumps the practice counter of a vocabulary item.
func (s *Store) PracticeWord(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	return s.updateProgress(ctx, func(p *domain.Progress) bool {
		practice(p, word, s.now())
		return true
	})
}

// RecordGrammarPattern counts a correction under its rule.
func (s *Store) RecordGrammarPattern(ctx context.Context, c domain.Correction) error {
	rule := strings.ToLower(strings.TrimSpace(c.Rule))
	if rule == "" {
		rule = "other"
	}
	return s.updateProgress(ctx, func(p *domain.Progress) bool {
		gp := p.GrammarPatterns[rule]
		gp.Count++
		gp.LastOriginal = c.Original
		gp.LastCorrected = c.Corrected
		gp.LastSeen = s.now()
		p.GrammarPatterns[rule] = gp
		return true
	})
}

func (s *Store) CustomTopics(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	topics, err := s.customTopicsLocked(ctx)
	if err != nil {
		s.log.Warnw("failed to read custom topics", "error", err)
	}
	return topics
}

func (s *Store) customTopicsLocked(ctx context.Context) ([]string, error) {
	var topics []string
	ok, err := s.load(ctx, keyCustomTopics, &topics)
	if !ok || topics == nil {
		return []string{}, err
	}
	return topics, nil
}

func (s *Store) SaveCustomTopic(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("topic is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	topics, err := s.customTopicsLocked(ctx)
	if err != nil {
		return err
	}
	topics, added := appendUnique(topics, topic)
	if !added {
		return nil
	}
	return s.save(ctx, keyCustomTopics, topics)
}

func (s *Store) RemoveCustomTopic(ctx context.Context, topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	topics, err := s.customTopicsLocked(ctx)
	if err != nil {
		return err
	}
	kept := topics[:0]
	for _, t := range topics {
		if t != topic {
			kept = append(kept, t)
		}
	}
	return s.save(ctx, keyCustomTopics, kept)
}

// Clear removes everything the store owns.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, k := range []string{keySettings, keyProgress, keySessions, keyCustomTopics} {
		if err := s.kv.Delete(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func appendUnique(list []string, v string) ([]string, bool) {
	for _, existing := range list {
		if strings.EqualFold(existing, v) {
			return list, false
		}
	}
	return append(list, v), true
}

func practice(p *domain.Progress, word string, at time.Time) {
	key := strings.ToLower(word)
	wp := p.VocabularyProgress[key]
	wp.Practiced++
	wp.LastPracticed = at
	p.VocabularyProgress[key] = wp
}
