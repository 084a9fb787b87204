package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/analysis/timeline"
	"github.com/zhouzirui/serene/backend/internal/metrics"
	"github.com/zhouzirui/serene/backend/internal/model/mood"
)

var (
	ErrInvalidMood  = errors.New("invalid mood")
	ErrUserRequired = errors.New("user id is required")
)

// Service records mood entries and renders the dashboard timeline.
type Service struct {
	store   mood.Store
	metrics *metrics.Collector
	now     func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMetrics attaches a collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

// NewService builds a Service backed by store.
func NewService(store mood.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores a new entry for userID.
func (s *Service) Record(ctx context.Context, userID, label, notes string) (mood.Entry, error) {
	if userID == "" {
		return mood.Entry{}, ErrUserRequired
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if !mood.Valid(label) {
		return mood.Entry{}, fmt.Errorf("%w: %q", ErrInvalidMood, label)
	}

	entry := mood.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mood:      label,
		Notes:     strings.TrimSpace(notes),
		Timestamp: s.now(),
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return mood.Entry{}, fmt.Errorf("record mood: %w", err)
	}

	s.metrics.ObserveMoodEntry(entry.Mood)
	log.Debug().Str("component", "mood").Str("user", userID).Str("mood", entry.Mood).Msg("mood recorded")
	return entry, nil
}

// Entries returns every entry recorded by userID.
func (s *Service) Entries(ctx context.Context, userID string) ([]mood.Entry, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	return entries, nil
}

// Timeline returns the seven day chart for userID anchored on the service clock.
func (s *Service) Timeline(ctx context.Context, userID string) ([]timeline.Point, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	today := s.now()
	entries, err := s.store.ListSince(ctx, userID, timeline.WindowStart(today))
	if err != nil {
		return nil, fmt.Errorf("load timeline entries: %w", err)
	}

	points := timeline.Build(today, entries)

	placeholders := 0
	for _, p := range points {
		if p.Placeholder {
			placeholders++
		}
	}
	s.metrics.ObserveTimeline(placeholders)
	return points, nil
}
