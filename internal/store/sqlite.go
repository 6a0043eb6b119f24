package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/pbaille/ht/internal/domain"
	"github.com/pbaille/ht/internal/window"
)

//go:embed schema.sql
var schema string

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// AddEntry inserts a validated entry with the current time as its creation
// timestamp. The unique index on the local day bucket makes the
// one-entry-per-day check atomic with the insert; a violation surfaces as
// domain.ErrDuplicateDay.
func (s *Store) AddEntry(ctx context.Context, in domain.EntryInput) (*domain.Entry, error) {
	return s.insertAt(ctx, in, time.Now())
}

func (s *Store) insertAt(ctx context.Context, in domain.EntryInput, createdAt time.Time) (*domain.Entry, error) {
	id := uuid.New().String()
	dayStart, _ := window.Day(createdAt)

	causes, locations, err := encodeLabels(in)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, score, notes, potential_causes, locations, time_of_day, created_at, day_start)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Score, in.Notes, causes, locations, in.TimeOfDay,
		createdAt.UnixMilli(), dayStart.UnixMilli(),
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, domain.ErrDuplicateDay
		}
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	return &domain.Entry{
		ID:              id,
		Score:           in.Score,
		Notes:           in.Notes,
		PotentialCauses: in.PotentialCauses,
		Locations:       in.Locations,
		TimeOfDay:       in.TimeOfDay,
		CreatedAt:       createdAt.UnixMilli(),
	}, nil
}

// GetEntry retrieves an entry by ID
func (s *Store) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, score, notes, potential_causes, locations, time_of_day, created_at
		FROM entries WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry replaces the content fields of an existing entry. The creation
// timestamp and its day bucket are never touched by updates.
func (s *Store) UpdateEntry(ctx context.Context, id string, in domain.EntryInput) (*domain.Entry, error) {
	causes, locations, err := encodeLabels(in)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE entries
		SET score = ?, notes = ?, potential_causes = ?, locations = ?, time_of_day = ?
		WHERE id = ?`,
		in.Score, in.Notes, causes, locations, in.TimeOfDay, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrEntryNotFound
	}

	return s.GetEntry(ctx, id)
}

// DeleteEntry removes an entry by ID. There is no soft delete.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if affected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListEntries returns all entries, newest first
func (s *Store) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, score, notes, potential_causes, locations, time_of_day, created_at
		FROM entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

// FindFirstInRange returns the earliest entry with createdAt in the half-open
// interval [start, end), or nil when the interval holds none.
func (s *Store) FindFirstInRange(ctx context.Context, start, end time.Time) (*domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, score, notes, potential_causes, locations, time_of_day, created_at
		FROM entries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC LIMIT 1`,
		start.UnixMilli(), end.UnixMilli(),
	)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find entry in range: %w", err)
	}
	return entry, nil
}

// TodayEntry returns the entry recorded during the local calendar day
// containing now, or nil when none exists yet.
func (s *Store) TodayEntry(ctx context.Context, now time.Time) (*domain.Entry, error) {
	start, end := window.Day(now)
	return s.FindFirstInRange(ctx, start, end)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*domain.Entry, error) {
	var e domain.Entry
	var causes, locations string

	if err := row.Scan(&e.ID, &e.Score, &e.Notes, &causes, &locations, &e.TimeOfDay, &e.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(causes), &e.PotentialCauses); err != nil {
		return nil, fmt.Errorf("decode causes: %w", err)
	}
	if err := json.Unmarshal([]byte(locations), &e.Locations); err != nil {
		return nil, fmt.Errorf("decode locations: %w", err)
	}

	return &e, nil
}

// encodeLabels serializes the label sets for storage. Labels are free-form
// strings and must round-trip exactly, order included.
func encodeLabels(in domain.EntryInput) (causes, locations string, err error) {
	c, err := json.Marshal(in.PotentialCauses)
	if err != nil {
		return "", "", fmt.Errorf("encode causes: %w", err)
	}
	l, err := json.Marshal(in.Locations)
	if err != nil {
		return "", "", fmt.Errorf("encode locations: %w", err)
	}
	return string(c), string(l), nil
}
