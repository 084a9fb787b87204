package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/serene/backend/internal/metrics"
	"github.com/zhouzirui/serene/backend/internal/model/chat"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrUserRequired = errors.New("user id is required")
)

const defaultHistoryLimit = 6

// Companion optionally rewrites the canned reply.
type Companion interface {
	Rewrite(ctx context.Context, history []chat.Message, message string, canned sentiment.Response) (string, error)
}

// Reply is the payload returned to the chat client.
type Reply struct {
	ID          string          `json:"id"`
	Message     string          `json:"message"`
	Sentiment   sentiment.Label `json:"sentiment"`
	Suggestions []string        `json:"suggestions"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Turn carries a classified user message between Begin and Finish.
type Turn struct {
	UserID   string
	Message  string
	Response sentiment.Response
	History  []chat.Message
}

// Service answers chat messages and keeps a per-user transcript in memory.
type Service struct {
	mu           sync.RWMutex
	messages     map[string][]chat.Message
	companion    Companion
	metrics      *metrics.Collector
	historyLimit int
	now          func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithCompanion enables model-written replies. A failing companion falls back to the canned text.
func WithCompanion(c Companion) Option {
	return func(s *Service) { s.companion = c }
}

// WithMetrics attaches a collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// WithHistoryLimit bounds how many past messages are handed to the companion.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService bootstraps the in-memory chat service.
func NewService(opts ...Option) *Service {
	s := &Service{
		messages:     make(map[string][]chat.Message),
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reply classifies message, optionally lets the companion reword the answer,
// and records both sides of the turn.
func (s *Service) Reply(ctx context.Context, userID, message string) (Reply, error) {
	turn, err := s.Begin(ctx, userID, message)
	if err != nil {
		return Reply{}, err
	}

	text := turn.Response.Text
	if s.companion != nil {
		rewritten, err := s.companion.Rewrite(ctx, turn.History, turn.Message, turn.Response)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("component", "chat").Msg("companion failed, using canned reply")
		case rewritten != "":
			text = rewritten
		}
	}

	return s.Finish(ctx, turn, text), nil
}

// Begin validates and classifies message without recording anything.
func (s *Service) Begin(_ context.Context, userID, message string) (Turn, error) {
	if userID == "" {
		return Turn{}, ErrUserRequired
	}
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Turn{}, ErrEmptyMessage
	}

	return Turn{
		UserID:   userID,
		Message:  trimmed,
		Response: sentiment.Classify(trimmed),
		History:  s.recent(userID, s.historyLimit),
	}, nil
}

// Finish records the user message and the reply text, returning the reply payload.
func (s *Service) Finish(_ context.Context, turn Turn, text string) Reply {
	now := s.now().UTC()
	userMsg := chat.Message{
		ID:        uuid.NewString(),
		UserID:    turn.UserID,
		Sender:    chat.SenderUser,
		Content:   turn.Message,
		CreatedAt: now,
	}
	aiMsg := chat.Message{
		ID:          uuid.NewString(),
		UserID:      turn.UserID,
		Sender:      chat.SenderAI,
		Content:     text,
		Sentiment:   string(turn.Response.Sentiment),
		Suggestions: append([]string(nil), turn.Response.Suggestions...),
		CreatedAt:   now,
	}

	s.mu.Lock()
	s.messages[turn.UserID] = append(s.messages[turn.UserID], userMsg, aiMsg)
	s.mu.Unlock()

	s.metrics.ObserveChatReply(string(turn.Response.Sentiment))

	return Reply{
		ID:          aiMsg.ID,
		Message:     text,
		Sentiment:   turn.Response.Sentiment,
		Suggestions: append([]string(nil), turn.Response.Suggestions...),
		Timestamp:   now,
	}
}

// History returns the full transcript for userID, oldest first.
func (s *Service) History(_ context.Context, userID string) ([]chat.Message, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return s.recent(userID, 0), nil
}

// RecentHistory is History bounded to the last limit messages. limit <= 0 returns everything.
func (s *Service) RecentHistory(_ context.Context, userID string, limit int) ([]chat.Message, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return s.recent(userID, limit), nil
}

func (s *Service) recent(userID string, limit int) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.messages[userID]
	start := 0
	if limit > 0 && len(messages) > limit {
		start = len(messages) - limit
	}

	copied := make([]chat.Message, len(messages)-start)
	copy(copied, messages[start:])
	return copied
}
