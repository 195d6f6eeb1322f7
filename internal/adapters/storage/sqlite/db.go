package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"event-scheduler/internal/adapters/storage/sqlstore"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Parámetros que siempre agregamos al DSN si no vienen (clave => parámetro).
var defaultParams = [][2]string{
	{"foreign_keys", "_pragma=foreign_keys(1)"},
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"_time_format", "_time_format=sqlite"},
}

// Open abre sqlite (modernc, sin cgo). Una sola conexión: sqlite serializa
// escrituras y así ":memory:" es la misma base para todo el pool.
func Open(dsn string) (*sql.DB, error) {
	dsn = withDefaults(strings.TrimSpace(dsn))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return db, nil
}

func withDefaults(dsn string) string {
	missing := make([]string, 0, len(defaultParams))
	for _, p := range defaultParams {
		if !strings.Contains(dsn, p[0]) {
			missing = append(missing, p[1])
		}
	}
	if len(missing) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	return sqlstore.Migrate(ctx, db, schema)
}

func Schema() string {
	return schema
}
