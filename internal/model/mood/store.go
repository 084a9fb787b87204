package mood

import (
	"context"
	"sync"
	"time"
)

// Store persists mood entries per user.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, userID string) ([]Entry, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]Entry, error)
}

// MemoryStore keeps entries in process memory, in insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Entry)}
}

// Append records entry under its user.
func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	s.entries[entry.UserID] = append(s.entries[entry.UserID], entry)
	s.mu.Unlock()
	return nil
}

// List returns a copy of every entry recorded for userID.
func (s *MemoryStore) List(_ context.Context, userID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.entries[userID]...), nil
}

// ListSince returns entries whose timestamp is not before since.
func (s *MemoryStore) ListSince(_ context.Context, userID string, since time.Time) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries[userID]))
	for _, entry := range s.entries[userID] {
		if !entry.Timestamp.Before(since) {
			out = append(out, entry)
		}
	}
	return out, nil
}
