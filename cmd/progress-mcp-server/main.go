package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"lingua-tutor/internal/app"
	"lingua-tutor/internal/config"
	"lingua-tutor/internal/logging"
	"lingua-tutor/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()
	logger := logging.Must(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	store, err := app.OpenStore(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to open store", "error", err)
	}
	defer store.Close()
	turns, err := storage.NewTurnLog(cfg.TurnLogPath)
	if err != nil {
		logger.Fatalw("failed to open turn log", "error", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "lingua-tutor-progress-mcp",
		Version: "1.0.0",
	}, nil)

	progress := NewProgressMCPServer(store, turns, logger.With("component", "mcp"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_progress",
		Description: "Returns the learner's settings and accumulated progress (learned words, difficult phrases, grammar patterns)",
	}, progress.GetProgress)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sessions",
		Description: "Lists saved conversation sessions, newest first, optionally filtered by topic",
	}, progress.ListSessions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_topics",
		Description: "Lists the built-in conversation topics and the learner's custom topics",
	}, progress.ListTopics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "topic_vocabulary",
		Description: "Returns the suggested vocabulary of a topic up to a CEFR level",
	}, progress.TopicVocabulary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "daily_stats",
		Description: "Summarizes the learner's practice turns for one day",
	}, progress.DailyStats)

	logger.Infow("starting progress MCP server on stdin/stdout", "tools", 5)
	if err := server.Run(context.Background(), mcp.NewStdioTransport()); err != nil {
		logger.Fatalw("server failed", "error", err)
	}
}
