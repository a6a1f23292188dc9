// Package sqlite provides a SQLite-backed event store via database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/example/personal-calendar/internal/chrono"
	"github.com/example/personal-calendar/internal/event"
	"github.com/example/personal-calendar/internal/persistence"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq                INTEGER PRIMARY KEY AUTOINCREMENT,
	id                 TEXT    NOT NULL UNIQUE,
	subject            TEXT    NOT NULL,
	location           TEXT    NOT NULL,
	description        TEXT    NOT NULL,
	status             TEXT    NOT NULL,
	start_at           TEXT    NOT NULL,
	end_at             TEXT,
	series_id          TEXT,
	original_series_id TEXT,
	is_exception       INTEGER NOT NULL DEFAULT 0
);`

// Store persists events in a SQLite database. The default DSN keeps the
// database in memory, so nothing survives the process.
type Store struct {
	db *sql.DB
}

// Open connects to the database named by dsn; an empty dsn opens an
// in-memory database.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// An in-memory database exists per connection; a second connection
	// would see an empty schema.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the events table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ListEvents returns every stored event in insertion order.
func (s *Store) ListEvents(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, location, description, status, start_at, end_at,
		       series_id, original_series_id, is_exception
		FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]event.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// InsertEvents appends the batch in one transaction.
func (s *Store) InsertEvents(ctx context.Context, events []event.Event) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, ev := range events {
			if err := insertTx(ctx, tx, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceEvents removes every event in removeIDs and appends the add batch
// in one transaction.
func (s *Store) ReplaceEvents(ctx context.Context, removeIDs []string, add []event.Event) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range removeIDs {
			res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
			if err != nil {
				return fmt.Errorf("delete event %s: %w", id, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("delete event %s: %w", id, err)
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s", persistence.ErrNotFound, id)
			}
		}
		for _, ev := range add {
			if err := insertTx(ctx, tx, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertTx(ctx context.Context, tx *sql.Tx, ev event.Event) error {
	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)`, ev.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check event %s: %w", ev.ID, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", persistence.ErrDuplicateID, ev.ID)
	}

	var endAt, seriesID, originalSeriesID sql.NullString
	isException := 0
	if ev.End != nil {
		endAt = sql.NullString{String: ev.End.String(), Valid: true}
	}
	if ev.Series != nil {
		seriesID = sql.NullString{String: ev.Series.SeriesID, Valid: true}
		originalSeriesID = sql.NullString{String: ev.Series.OriginalSeriesID, Valid: true}
		if ev.Series.IsException {
			isException = 1
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events (id, subject, location, description, status, start_at,
		                    end_at, series_id, original_series_id, is_exception)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Subject, ev.Location, ev.Description, string(ev.Status),
		ev.Start.String(), endAt, seriesID, originalSeriesID, isException); err != nil {
		return fmt.Errorf("insert event %s: %w", ev.ID, err)
	}
	return nil
}

func scanEvent(rows *sql.Rows) (event.Event, error) {
	var ev event.Event
	var status, startAt string
	var endAt, seriesID, originalSeries sql.NullString
	var isException int
	if err := rows.Scan(&ev.ID, &ev.Subject, &ev.Location, &ev.Description,
		&status, &startAt, &endAt, &seriesID, &originalSeries, &isException); err != nil {
		return event.Event{}, fmt.Errorf("scan event: %w", err)
	}

	ev.Status = event.Status(status)

	start, err := chrono.ParseInstant(startAt)
	if err != nil {
		return event.Event{}, fmt.Errorf("decode start of event %s: %w", ev.ID, err)
	}
	ev.Start = start

	if endAt.Valid {
		end, err := chrono.ParseInstant(endAt.String)
		if err != nil {
			return event.Event{}, fmt.Errorf("decode end of event %s: %w", ev.ID, err)
		}
		ev.End = &end
	}

	if seriesID.Valid {
		ev.Series = &event.SeriesMembership{
			SeriesID:         seriesID.String,
			OriginalSeriesID: originalSeries.String,
			IsException:      isException != 0,
		}
	}
	return ev, nil
}
