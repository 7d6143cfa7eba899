package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lingua-tutor/internal/catalog"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/llm"
)

// VocabularySample is how many topic words are suggested per request.
const VocabularySample = 4

type ErrorKind string

const (
	KindTransport      ErrorKind = "transport"
	KindEmptyResponse  ErrorKind = "empty_response"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindPrompt         ErrorKind = "prompt"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of an assistant error, or "" for other errors.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// Client turns a chat request into a prompt, calls the model and parses the
// side channel out of the answer.
type Client struct {
	llm         llm.Client
	learnerName string
	log         *zap.SugaredLogger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewClient(c llm.Client, learnerName string, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		llm:         c,
		learnerName: learnerName,
		log:         logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Client) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	if err := validate(req); err != nil {
		return domain.ChatReply{}, err
	}

	var vocab []catalog.VocabularyItem
	if t, ok := catalog.FindTopic(req.Topic); ok {
		c.mu.Lock()
		vocab = catalog.RandomVocabulary(t.ID, req.DifficultyLevel, VocabularySample, c.rng)
		c.mu.Unlock()
	}

	system, err := BuildSystemPrompt(req.Topic, req.DifficultyLevel, c.learnerName, vocab)
	if err != nil {
		c.log.Errorw("failed to build system prompt", "topic", req.Topic, "error", err)
		return domain.ChatReply{}, &Error{Kind: KindPrompt, Message: "system prompt unavailable", Err: err}
	}
	msgs := make([]llm.Message, 0, len(req.History)+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, m := range req.History {
		msgs = append(msgs, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	resp, err := c.llm.Generate(ctx, msgs)
	if err != nil {
		c.log.Errorw("llm request failed", "topic", req.Topic, "level", req.DifficultyLevel, "error", err)
		return domain.ChatReply{}, &Error{Kind: KindTransport, Message: "language model request failed", Err: err}
	}
	c.log.Debugw("llm response", "model", resp.Model, "prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens, "total_tokens", resp.TotalTokens)

	content, side, perr := ExtractSideChannel(resp.Content)
	if perr != nil {
		c.log.Warnw("failed to parse side channel", "error", perr)
	}
	if content == "" {
		return domain.ChatReply{}, &Error{Kind: KindEmptyResponse, Message: "language model returned no text"}
	}
	return domain.ChatReply{Content: content, Corrections: side.Corrections, Progress: side.Progress}, nil
}

func validate(req domain.ChatRequest) error {
	switch {
	case strings.TrimSpace(req.Topic) == "":
		return &Error{Kind: KindInvalidRequest, Message: "topic is required"}
	case !req.DifficultyLevel.Valid():
		return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("unknown difficulty level %q", req.DifficultyLevel)}
	case len(req.History) == 0:
		return &Error{Kind: KindInvalidRequest, Message: "at least one message is required"}
	}
	for _, m := range req.History {
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf("unsupported role %q", m.Role)}
		}
	}
	return nil
}
