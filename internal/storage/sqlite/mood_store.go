package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zhouzirui/serene/backend/internal/model/mood"
)

// MoodStore implements mood.Store on SQLite. Timestamps are stored as unix
// nanoseconds and read back in UTC.
type MoodStore struct {
	db *sql.DB
}

var _ mood.Store = (*MoodStore)(nil)

// NewMoodStore opens the database at path.
func NewMoodStore(path string) (*MoodStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &MoodStore{db: db}, nil
}

// NewMoodStoreWithDB wraps an already opened connection.
func NewMoodStoreWithDB(db *sql.DB) (*MoodStore, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &MoodStore{db: db}, nil
}

// Close releases the underlying connection.
func (s *MoodStore) Close() error {
	return s.db.Close()
}

// HealthCheck pings the database.
func (s *MoodStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Append inserts entry.
func (s *MoodStore) Append(ctx context.Context, entry mood.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_entries (id, user_id, mood, notes, recorded_at) VALUES (?,?,?,?,?)`,
		entry.ID, entry.UserID, entry.Mood, entry.Notes, entry.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

// List returns every entry of userID in insertion order.
func (s *MoodStore) List(ctx context.Context, userID string) ([]mood.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, mood, notes, recorded_at FROM mood_entries WHERE user_id = ? ORDER BY seq`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	return scanEntries(rows)
}

// ListSince returns entries of userID recorded at or after since, in insertion order.
func (s *MoodStore) ListSince(ctx context.Context, userID string, since time.Time) ([]mood.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, mood, notes, recorded_at FROM mood_entries WHERE user_id = ? AND recorded_at >= ? ORDER BY seq`,
		userID, since.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("query mood entries since: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]mood.Entry, error) {
	defer rows.Close()

	entries := make([]mood.Entry, 0)
	for rows.Next() {
		var (
			entry mood.Entry
			nanos int64
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Notes, &nanos); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		entry.Timestamp = time.Unix(0, nanos).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood entries: %w", err)
	}
	return entries, nil
}
