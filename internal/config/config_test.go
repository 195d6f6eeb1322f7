package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
		"DB_DRIVER", "DB_DSN", "DB_AUTO_MIGRATE",
		"CORS_ALLOWED_ORIGINS", "TIMEZONES_FILE",
		"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestParse_DSNWithoutDriverMeansPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "postgres://u:p@localhost/events")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
}

func TestParse_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("DB_DSN", "file:events.db")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":  {"DB_DRIVER": "mongo"},
		"sqlite no dsn":   {"DB_DRIVER": "sqlite"},
		"postgres no dsn": {"DB_DRIVER": "postgres"},
		"bad port":        {"PORT": "70000"},
		"port not number": {"PORT": "abc"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=5000\nAPP_NAME=from-file\n"), 0o600))
	t.Setenv("PORT", "6000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.Port)
	assert.Equal(t, "from-file", cfg.AppName)
	os.Unsetenv("APP_NAME")
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
