package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"event-scheduler/internal/domain/profiles"
)

// ProfilesRepo funciona igual con pgx y con sqlite: solo SQL portable y $n.
type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, timezone, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		p.ID,
		p.Name,
		p.Timezone,
		p.Email,
		p.CreatedAt.UTC(),
	)
	return err
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, timezone, email, created_at
		FROM profiles
		WHERE id = $1
	`, id)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profiles.Profile{}, profiles.ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return p, nil
}

func (r *ProfilesRepo) List(ctx context.Context) ([]profiles.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, timezone, email, created_at
		FROM profiles
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profiles.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FindByIDs respeta el orden de ids (el IN no garantiza orden).
func (r *ProfilesRepo) FindByIDs(ctx context.Context, ids []string) ([]profiles.Profile, error) {
	if len(ids) == 0 {
		return []profiles.Profile{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, timezone, email, created_at
		FROM profiles
		WHERE id IN (`+placeholders(1, len(ids))+`)
	`, toArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]profiles.Profile, len(ids))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]profiles.Profile, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(s rowScanner) (profiles.Profile, error) {
	var p profiles.Profile
	err := s.Scan(&p.ID, &p.Name, &p.Timezone, &p.Email, dbTime{&p.CreatedAt})
	return p, err
}
