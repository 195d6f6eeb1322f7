package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Drivers de storage soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"4000"`
	AppName   string `env:"APP_NAME" envDefault:"event-scheduler"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DB DBConfig `envPrefix:"DB_"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Archivo YAML opcional que reemplaza la tabla de zonas por defecto.
	TimezonesFile string `env:"TIMEZONES_FILE"`

	HTTP HTTPConfig `envPrefix:"HTTP_"`
}

type DBConfig struct {
	Driver      string `env:"DRIVER"`
	DSN         string `env:"DSN"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load lee .env (si existe) y luego el entorno. Las variables ya definidas
// en el entorno tienen prioridad sobre el archivo.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse lee solo del entorno del proceso.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	c.DB.DSN = strings.TrimSpace(c.DB.DSN)

	// compat: DB_DSN solo (sin driver) => postgres
	if c.DB.Driver == "" {
		if c.DB.DSN != "" {
			c.DB.Driver = DriverPostgres
		} else {
			c.DB.Driver = DriverMemory
		}
	}

	switch c.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.DB.DSN == "" {
			return fmt.Errorf("DB_DSN is required for driver %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSAllowedOrigins = origins
	c.TimezonesFile = strings.TrimSpace(c.TimezonesFile)
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
