package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/serene/backend/internal/validation"
)

var (
	ErrUserRequired   = errors.New("user id is required")
	ErrInvalidJournal = errors.New("invalid journal entry")
)

// Entry is a private journal page.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// Input is the writable part of an Entry. Tags is a comma separated list.
type Input struct {
	Title   string `json:"title" validate:"min=3,max=100"`
	Content string `json:"content" validate:"min=5"`
	Mood    string `json:"mood" validate:"omitempty,max=32"`
	Tags    string `json:"tags" validate:"omitempty,max=200"`
}

// Service stores journal entries in memory.
type Service struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	now     func() time.Time
}

// NewService returns an empty journal.
func NewService() *Service {
	return &Service{entries: make(map[string][]Entry), now: time.Now}
}

// Create validates in and stores a new entry.
func (s *Service) Create(_ context.Context, userID string, in Input) (Entry, error) {
	if userID == "" {
		return Entry{}, ErrUserRequired
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(in); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidJournal, err)
	}

	entry := Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Mood:      strings.TrimSpace(in.Mood),
		Tags:      splitTags(in.Tags),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.entries[userID] = append(s.entries[userID], entry)
	s.mu.Unlock()
	return entry, nil
}

// List returns userID's entries, newest first.
func (s *Service) List(_ context.Context, userID string) ([]Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.entries[userID]
	out := make([]Entry, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
