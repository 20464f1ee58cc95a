package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/marsdash/internal/db"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("journal entry not found")

const timeLayout = "2006-01-02 15:04:05.000"

// Store provides access to the fetch journal.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a new entry. If entry.ID is empty a UUID is generated; a
// zero Timestamp is set to now.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetch_journal (
			id, timestamp, rover, sol, outcome, status_code, bytes, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(timeLayout),
		entry.Rover,
		entry.Sol,
		string(entry.Outcome),
		entry.StatusCode,
		entry.Bytes,
		entry.DurationMS,
		entry.Error,
	)
	if err != nil {
		return entry, fmt.Errorf("inserting journal entry: %w", err)
	}
	return entry, nil
}

// Get retrieves a single entry.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, rover, sol, outcome, status_code, bytes, duration_ms, error
		FROM fetch_journal WHERE id = ?`, id)

	e, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal entry: %w", err)
	}
	return e, nil
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, filter Filter) ([]Entry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := "SELECT id, timestamp, rover, sol, outcome, status_code, bytes, duration_ms, error FROM fetch_journal"
	var args []any
	if filter.Rover != "" {
		query += " WHERE rover = ?"
		args = append(args, filter.Rover)
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, rowid DESC LIMIT %d", limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e       Entry
		ts      string
		outcome string
	)
	err := sc.Scan(&e.ID, &ts, &e.Rover, &e.Sol, &outcome, &e.StatusCode, &e.Bytes, &e.DurationMS, &e.Error)
	if err != nil {
		return nil, err
	}
	e.Outcome = Outcome(outcome)
	if t, parseErr := time.Parse(timeLayout, ts); parseErr == nil {
		e.Timestamp = t
	}
	return &e, nil
}
