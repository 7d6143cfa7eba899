package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"lingua-tutor/internal/analytics"
	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/domain"
)

type GetProgressParams struct{}

type ListSessionsParams struct {
	Topic string `json:"topic,omitempty" mcp:"only sessions on this topic (id or name)"`
	Limit int    `json:"limit,omitempty" mcp:"maximum number of sessions, newest first (default: 10)"`
}

type ListTopicsParams struct{}

type TopicVocabularyParams struct {
	Topic string `json:"topic" mcp:"topic id or name"`
	Level string `json:"level,omitempty" mcp:"CEFR level A1..C1 (default: the learner's level)"`
}

type DailyStatsParams struct {
	Date string `json:"date,omitempty" mcp:"day in YYYY-MM-DD, UTC (default: today)"`
}

// SessionSummary is a session without its transcript.
type SessionSummary struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Messages  int        `json:"messages"`
}

type progressReader interface {
	Settings(ctx context.Context) domain.Settings
	Progress(ctx context.Context) domain.Progress
	Sessions(ctx context.Context) []domain.Session
	CustomTopics(ctx context.Context) []string
}

type turnLoader interface {
	LoadTurns() ([]domain.TurnEvent, error)
}

// ProgressMCPServer exposes the learner's saved progress as read-only tools.
type ProgressMCPServer struct {
	store progressReader
	turns turnLoader
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewProgressMCPServer(store progressReader, turns turnLoader, logger *zap.SugaredLogger) *ProgressMCPServer {
	return &ProgressMCPServer{store: store, turns: turns, log: logger, now: time.Now}
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func errorResult(format string, args ...any) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func jsonResult(v any) *mcp.CallToolResultFor[any] {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return textResult(string(data))
}

func (s *ProgressMCPServer) GetProgress(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[GetProgressParams]) (*mcp.CallToolResultFor[any], error) {
	s.log.Debugw("get_progress called")
	return jsonResult(struct {
		Settings domain.Settings `json:"settings"`
		Progress domain.Progress `json:"progress"`
	}{s.store.Settings(ctx), s.store.Progress(ctx)}), nil
}

func (s *ProgressMCPServer) ListSessions(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[ListSessionsParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	limit := args.Limit
	if limit <= 0 {
		limit = 10
	}
	topic := strings.TrimSpace(args.Topic)
	if t, ok := catalog.FindTopic(topic); ok {
		topic = t.ID
	}

	sessions := s.store.Sessions(ctx)
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	out := make([]SessionSummary, 0, limit)
	for _, sess := range sessions {
		if topic != "" && !strings.EqualFold(sess.TopicID, topic) && !strings.EqualFold(sess.Topic, topic) {
			continue
		}
		out = append(out, SessionSummary{ID: sess.ID, Topic: sess.Topic, StartedAt: sess.StartedAt, EndedAt: sess.EndedAt, Messages: len(sess.Messages)})
		if len(out) == limit {
			break
		}
	}
	s.log.Debugw("list_sessions called", "topic", topic, "returned", len(out))
	return jsonResult(out), nil
}

func (s *ProgressMCPServer) ListTopics(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[ListTopicsParams]) (*mcp.CallToolResultFor[any], error) {
	topics := catalog.Topics()
	for _, name := range s.store.CustomTopics(ctx) {
		topics = append(topics, catalog.Topic{ID: name, Name: name, Custom: true})
	}
	return jsonResult(topics), nil
}

func (s *ProgressMCPServer) TopicVocabulary(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[TopicVocabularyParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	t, ok := catalog.FindTopic(args.Topic)
	if !ok {
		return errorResult("unknown topic %q; call list_topics for the built-in ones", args.Topic), nil
	}
	level := s.store.Settings(ctx).DifficultyLevel
	if args.Level != "" {
		l, err := domain.ParseLevel(args.Level)
		if err != nil {
			return errorResult("%v", err), nil
		}
		level = l
	}
	return jsonResult(catalog.VocabularyFor(t.ID, level)), nil
}

func (s *ProgressMCPServer) DailyStats(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[DailyStatsParams]) (*mcp.CallToolResultFor[any], error) {
	day := s.now().UTC()
	if d := strings.TrimSpace(params.Arguments.Date); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return errorResult("date must be YYYY-MM-DD: %v", err), nil
		}
		day = parsed
	}
	events, err := s.turns.LoadTurns()
	if err != nil {
		return errorResult("failed to read turn log: %v", err), nil
	}
	stats := analytics.AnalyzeDailyTurns(events, day)
	js, err := stats.ToJSON()
	if err != nil {
		return errorResult("failed to encode stats: %v", err), nil
	}
	return textResult(stats.Summary() + "\n" + js), nil
}
