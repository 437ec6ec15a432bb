package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eeese/showcase/internal/domain"
	"github.com/eeese/showcase/internal/domain/vo"
)

const eventColumns = `id, name, description, image_uri, longitude, latitude, start_at, end_at`

const upsertEventQuery = `
	INSERT INTO events (id, name, description, image_uri, longitude, latitude, start_at, end_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		image_uri = excluded.image_uri,
		longitude = excluded.longitude,
		latitude = excluded.latitude,
		start_at = excluded.start_at,
		end_at = excluded.end_at,
		updated_at = CURRENT_TIMESTAMP
`

func upsertEvent(ctx context.Context, db execer, e domain.Event) error {
	var lon, lat sql.NullFloat64
	if loc, ok := e.Location(); ok {
		lon = sql.NullFloat64{Float64: loc.Longitude(), Valid: true}
		lat = sql.NullFloat64{Float64: loc.Latitude(), Valid: true}
	}
	_, err := db.ExecContext(ctx, upsertEventQuery,
		e.ID(), e.Name(), e.Description(), e.ImageURI(),
		lon, lat, formatTime(e.Start()), formatTime(e.End()))
	if err != nil {
		return fmt.Errorf("event %s: %w", e.ID(), err)
	}
	return nil
}

// InsertEvent upserts an event
func (s *Store) InsertEvent(ctx context.Context, event domain.Event) error {
	if err := upsertEvent(ctx, s.db, event); err != nil {
		return persistenceError("insert event", err)
	}
	return nil
}

// InsertEvents upserts a batch of events in one transaction
func (s *Store) InsertEvents(ctx context.Context, events []domain.Event) error {
	return s.withTx(ctx, "insert events", func(tx *sql.Tx) error {
		for _, e := range events {
			if err := upsertEvent(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetEvents replaces the whole events table
func (s *Store) SetEvents(ctx context.Context, events []domain.Event) error {
	return s.withTx(ctx, "set events", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
			return err
		}
		for _, e := range events {
			if err := upsertEvent(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearEvents deletes every event
func (s *Store) ClearEvents(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return persistenceError("clear events", err)
	}
	return nil
}

// GetEvent retrieves an event by id. force is ignored.
func (s *Store) GetEvent(ctx context.Context, id string, force bool) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, fmt.Errorf("event %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

// GetEvents returns every event ordered by id. force is ignored.
func (s *Store) GetEvents(ctx context.Context, force bool) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+eventColumns+" FROM events ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanEvent(row scanner) (domain.Event, error) {
	var (
		attrs      domain.EventAttrs
		lon, lat   sql.NullFloat64
		start, end sql.NullString
	)
	if err := row.Scan(&attrs.ID, &attrs.Name, &attrs.Description, &attrs.ImageURI,
		&lon, &lat, &start, &end); err != nil {
		return domain.Event{}, err
	}

	if lon.Valid && lat.Valid {
		loc, err := vo.NewLocation(lon.Float64, lat.Float64)
		if err != nil {
			return domain.Event{}, fmt.Errorf("event %s: %w", attrs.ID, err)
		}
		attrs.Location = &loc
	}

	var err error
	if attrs.Start, err = parseTime(start); err != nil {
		return domain.Event{}, fmt.Errorf("event %s: start: %w", attrs.ID, err)
	}
	if attrs.End, err = parseTime(end); err != nil {
		return domain.Event{}, fmt.Errorf("event %s: end: %w", attrs.ID, err)
	}

	return domain.NewEvent(attrs)
}

func formatTime(t time.Time, ok bool) sql.NullString {
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}

func parseTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
