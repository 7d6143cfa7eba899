package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lingua-tutor/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	s := NewStore(kv, nil)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s, kv
}

func TestStore_DefaultsWhenEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	if got := s.Settings(ctx); got != domain.DefaultSettings() {
		t.Fatalf("settings: %+v", got)
	}
	p := s.Progress(ctx)
	if p.LearnedWords == nil || p.VocabularyProgress == nil || p.GrammarPatterns == nil || p.SessionsCompleted != 0 {
		t.Fatalf("progress defaults: %+v", p)
	}
	if got := s.Sessions(ctx); got == nil || len(got) != 0 {
		t.Fatalf("sessions: %v", got)
	}
}

func TestStore_CorruptedValueIsCleared(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	_ = kv.Put(ctx, keyProgress, []byte("{not json"))
	_ = kv.Put(ctx, keySettings, []byte(`{"difficultyLevel":"Z9"}`))

	if p := s.Progress(ctx); len(p.LearnedWords) != 0 {
		t.Fatalf("want defaults, got %+v", p)
	}
	if _, err := kv.Get(ctx, keyProgress); err != ErrNotFound {
		t.Fatalf("corrupted progress should be deleted, got %v", err)
	}
	if st := s.Settings(ctx); st != domain.DefaultSettings() {
		t.Fatalf("want default settings, got %+v", st)
	}
}

func TestStore_SettingsRoundTripNormalizes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	in := domain.Settings{DifficultyLevel: domain.LevelB2, SpeakingSpeed: 5, Accent: domain.AccentBritish, VoiceGender: domain.VoiceMale}
	if err := s.SaveSettings(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Settings(ctx)
	if got.DifficultyLevel != domain.LevelB2 || got.SpeakingSpeed != domain.MaxSpeakingSpeed || got.Accent != domain.AccentBritish {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestStore_AppendSessionUpsertsAndCounts(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := domain.Session{ID: "a", Topic: "Travel"}
	b := domain.Session{ID: "b", Topic: "Food"}
	for _, sess := range []domain.Session{a, b} {
		if err := s.AppendSession(ctx, sess); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	a.Messages = []domain.Message{{ID: "1", Role: domain.RoleUser, Content: "hi"}}
	if err := s.AppendSession(ctx, a); err != nil {
		t.Fatalf("re-append: %v", err)
	}

	sessions := s.Sessions(ctx)
	if len(sessions) != 2 || len(sessions[0].Messages) != 1 {
		t.Fatalf("sessions: %+v", sessions)
	}
	p := s.Progress(ctx)
	if p.SessionsCompleted != 2 || p.LastSessionDate == nil || !p.LastSessionDate.Equal(s.now()) {
		t.Fatalf("progress: %+v", p)
	}
}

func TestStore_ProgressUpdates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_ = s.MarkTopicCompleted(ctx, "travel")
	_ = s.MarkTopicCompleted(ctx, "travel")
	_ = s.AddLearnedWord(ctx, " Itinerary ")
	_ = s.AddLearnedWord(ctx, "itinerary")
	_ = s.AddLearnedWord(ctx, "")
	_ = s.AddDifficultPhrase(ctx, "I have went")
	_ = s.AddDifficultPhrase(ctx, "i have went")
	_ = s.RecordGrammarPattern(ctx, domain.Correction{Original: "I goed", Corrected: "I went", Rule: "Past Tense"})
	_ = s.RecordGrammarPattern(ctx, domain.Correction{Original: "he go", Corrected: "he goes", Rule: "past tense"})
	_ = s.RecordGrammarPattern(ctx, domain.Correction{Original: "x", Corrected: "y"})

	p := s.Progress(ctx)
	if len(p.TopicsCompleted) != 1 {
		t.Fatalf("topics: %v", p.TopicsCompleted)
	}
	if len(p.LearnedWords) != 1 || p.LearnedWords[0] != "Itinerary" {
		t.Fatalf("learned: %v", p.LearnedWords)
	}
	if p.VocabularyProgress["itinerary"].Practiced != 2 {
		t.Fatalf("practice count: %+v", p.VocabularyProgress)
	}
	if len(p.DifficultPhrases) != 1 {
		t.Fatalf("difficult: %v", p.DifficultPhrases)
	}
	gp := p.GrammarPatterns["past tense"]
	if gp.Count != 2 || gp.LastCorrected != "he goes" {
		t.Fatalf("grammar: %+v", p.GrammarPatterns)
	}
	if p.GrammarPatterns["other"].Count != 1 {
		t.Fatalf("rule-less corrections should be grouped: %+v", p.GrammarPatterns)
	}
}

func TestStore_CustomTopicsAndClear(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()
	if err := s.SaveCustomTopic(ctx, "Gardening"); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = s.SaveCustomTopic(ctx, "gardening")
	_ = s.SaveCustomTopic(ctx, "Chess")
	if err := s.SaveCustomTopic(ctx, "  "); err == nil {
		t.Fatalf("expected error for blank topic")
	}
	if got := s.CustomTopics(ctx); len(got) != 2 {
		t.Fatalf("topics: %v", got)
	}
	_ = s.RemoveCustomTopic(ctx, "Gardening")
	if got := s.CustomTopics(ctx); len(got) != 1 || got[0] != "Chess" {
		t.Fatalf("after remove: %v", got)
	}

	_ = s.SaveSettings(ctx, domain.DefaultSettings())
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, k := range []string{keySettings, keyProgress, keySessions, keyCustomTopics} {
		if _, err := kv.Get(ctx, k); err != ErrNotFound {
			t.Fatalf("%s not cleared", k)
		}
	}
}

// flakyKV fails the next failGets reads.
type flakyKV struct {
	*MemoryKV
	mu       sync.Mutex
	failGets int
}

var errBackendDown = errors.New("backend unavailable")

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGets > 0
	if fail {
		f.failGets--
	}
	f.mu.Unlock()
	if fail {
		return nil, errBackendDown
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *flakyKV) failNext(n int) {
	f.mu.Lock()
	f.failGets = n
	f.mu.Unlock()
}

func TestStore_ReadFailureDoesNotOverwriteSavedData(t *testing.T) {
	kv := &flakyKV{MemoryKV: NewMemoryKV()}
	s := NewStore(kv, nil)
	ctx := context.Background()
	for _, w := range []string{"itinerary", "luggage", "souvenir"} {
		if err := s.AddLearnedWord(ctx, w); err != nil {
			t.Fatalf("add %q: %v", w, err)
		}
	}
	if err := s.MarkTopicCompleted(ctx, "travel"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := s.AppendSession(ctx, domain.Session{ID: "s1", Topic: "Travel & Holidays"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.SaveCustomTopic(ctx, "gardening"); err != nil {
		t.Fatalf("save topic: %v", err)
	}

	kv.failNext(1)
	if err := s.AddLearnedWord(ctx, "recipe"); !errors.Is(err, errBackendDown) {
		t.Fatalf("add learned word: want backend error, got %v", err)
	}
	kv.failNext(1)
	if err := s.AppendSession(ctx, domain.Session{ID: "s2", Topic: "Food & Cooking"}); !errors.Is(err, errBackendDown) {
		t.Fatalf("append session: want backend error, got %v", err)
	}
	kv.failNext(1)
	if err := s.SaveCustomTopic(ctx, "chess"); !errors.Is(err, errBackendDown) {
		t.Fatalf("save custom topic: want backend error, got %v", err)
	}
	kv.failNext(1)
	if err := s.RemoveCustomTopic(ctx, "gardening"); !errors.Is(err, errBackendDown) {
		t.Fatalf("remove custom topic: want backend error, got %v", err)
	}

	p := s.Progress(ctx)
	if len(p.LearnedWords) != 3 || len(p.TopicsCompleted) != 1 || p.SessionsCompleted != 1 {
		t.Fatalf("progress was overwritten: %+v", p)
	}
	if got := s.Sessions(ctx); len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("sessions were overwritten: %+v", got)
	}
	if got := s.CustomTopics(ctx); len(got) != 1 || got[0] != "gardening" {
		t.Fatalf("custom topics were overwritten: %v", got)
	}
}

func TestStore_GettersDegradeOnReadFailure(t *testing.T) {
	kv := &flakyKV{MemoryKV: NewMemoryKV()}
	s := NewStore(kv, nil)
	ctx := context.Background()
	kv.failNext(3)
	if got := s.Settings(ctx); got != domain.DefaultSettings() {
		t.Fatalf("settings: %+v", got)
	}
	if p := s.Progress(ctx); p.LearnedWords == nil || len(p.LearnedWords) != 0 {
		t.Fatalf("progress: %+v", p)
	}
	if got := s.Sessions(ctx); got == nil || len(got) != 0 {
		t.Fatalf("sessions: %v", got)
	}
}
