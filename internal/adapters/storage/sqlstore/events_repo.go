package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"event-scheduler/internal/domain/events"
)

// EventsRepo guarda el evento en tres tablas: events, event_profiles (orden de
// membresía en ord) y event_logs (append-only, orden en seq).
type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO events (id, timezone, start_at, end_at, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		e.ID,
		e.Timezone,
		e.Start.UTC(),
		e.End.UTC(),
		e.Revision,
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}

	if err := insertMembers(ctx, tx, e.ID, e.ProfileIDs); err != nil {
		return err
	}
	if err := insertLogs(ctx, tx, e.ID, 0, e.Logs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrEventNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, timezone, start_at, end_at, revision, created_at, updated_at
		FROM events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Event{}, events.ErrEventNotFound
		}
		return events.Event{}, err
	}

	byEvent := map[string]*events.Event{e.ID: &e}
	if err := r.loadMembers(ctx, byEvent, `WHERE event_id = $1`, id); err != nil {
		return events.Event{}, err
	}
	if err := r.loadLogs(ctx, byEvent, `WHERE event_id = $1`, id); err != nil {
		return events.Event{}, err
	}
	return e, nil
}

// List trae todo en tres consultas y arma los eventos en memoria.
func (r *EventsRepo) List(ctx context.Context) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timezone, start_at, end_at, revision, created_at, updated_at
		FROM events
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	byEvent := make(map[string]*events.Event, len(out))
	for i := range out {
		byEvent[out[i].ID] = &out[i]
	}
	if err := r.loadMembers(ctx, byEvent, ""); err != nil {
		return nil, err
	}
	if err := r.loadLogs(ctx, byEvent, ""); err != nil {
		return nil, err
	}
	return out, nil
}

// Save es compare-and-swap sobre revision. Campos, perfiles y logs nuevos
// se escriben en la misma transacción.
func (r *EventsRepo) Save(ctx context.Context, e events.Event, expectedRevision int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET timezone = $1, start_at = $2, end_at = $3, revision = $4, updated_at = $5
		WHERE id = $6 AND revision = $7
	`,
		e.Timezone,
		e.Start.UTC(),
		e.End.UTC(),
		e.Revision,
		e.UpdatedAt.UTC(),
		e.ID,
		expectedRevision,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = $1`, e.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return events.ErrEventNotFound
		}
		if err != nil {
			return err
		}
		return events.ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_profiles WHERE event_id = $1`, e.ID); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, e.ID, e.ProfileIDs); err != nil {
		return err
	}

	// Los logs son append-only: solo se insertan los que el store no tiene.
	var stored int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM event_logs WHERE event_id = $1
	`, e.ID).Scan(&stored); err != nil {
		return err
	}
	if stored > len(e.Logs) {
		return fmt.Errorf("save event %s: stored log has %d entries, got %d", e.ID, stored, len(e.Logs))
	}
	if err := insertLogs(ctx, tx, e.ID, stored, e.Logs[stored:]); err != nil {
		return err
	}

	return tx.Commit()
}

func insertMembers(ctx context.Context, tx *sql.Tx, eventID string, ids []string) error {
	for i, pid := range ids {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO event_profiles (event_id, ord, profile_id)
			VALUES ($1, $2, $3)
		`, eventID, i, pid); err != nil {
			return err
		}
	}
	return nil
}

// insertLogs numera desde after+1.
func insertLogs(ctx context.Context, tx *sql.Tx, eventID string, after int, logs []events.LogEntry) error {
	for i, l := range logs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO event_logs (event_id, seq, profile_id, action, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, eventID, after+i+1, nullString(l.ProfileID), l.Action, l.Timestamp.UTC()); err != nil {
			return err
		}
	}
	return nil
}

func (r *EventsRepo) loadMembers(ctx context.Context, byEvent map[string]*events.Event, where string, args ...any) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, profile_id
		FROM event_profiles
		`+where+`
		ORDER BY event_id, ord
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, profileID string
		if err := rows.Scan(&eventID, &profileID); err != nil {
			return err
		}
		if e, ok := byEvent[eventID]; ok {
			e.ProfileIDs = append(e.ProfileIDs, profileID)
		}
	}
	return rows.Err()
}

func (r *EventsRepo) loadLogs(ctx context.Context, byEvent map[string]*events.Event, where string, args ...any) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, profile_id, action, created_at
		FROM event_logs
		`+where+`
		ORDER BY event_id, seq
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID string
			actor   sql.NullString
			l       events.LogEntry
		)
		if err := rows.Scan(&eventID, &actor, &l.Action, dbTime{&l.Timestamp}); err != nil {
			return err
		}
		l.ProfileID = actor.String
		if e, ok := byEvent[eventID]; ok {
			e.Logs = append(e.Logs, l)
		}
	}
	return rows.Err()
}

func scanEvent(s rowScanner) (events.Event, error) {
	e := events.Event{
		ProfileIDs: []string{},
		Logs:       []events.LogEntry{},
	}
	err := s.Scan(
		&e.ID,
		&e.Timezone,
		dbTime{&e.Start},
		dbTime{&e.End},
		&e.Revision,
		dbTime{&e.CreatedAt},
		dbTime{&e.UpdatedAt},
	)
	return e, err
}
