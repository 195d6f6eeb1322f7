package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"event-scheduler/internal/adapters/storage/postgres"
	"event-scheduler/internal/adapters/storage/sqlite"
	"event-scheduler/internal/config"
	"event-scheduler/internal/domain/scheduling"
	"event-scheduler/internal/platform/logger"
	"event-scheduler/internal/router"

	"github.com/urfave/cli/v2"
)

// @title Event Scheduler API
// @version 1.0
// @description Perfiles, eventos multi-zona horaria e historial de cambios.
// @BasePath /
func main() {
	app := &cli.App{
		Name:   "event-scheduler",
		Usage:  "API de perfiles y eventos con zonas horarias e historial de cambios.",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Levanta el servidor HTTP (default).",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Crea las tablas en la base configurada (DB_DRIVER/DB_DSN).",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "print", Usage: "Solo imprime el DDL, no toca la base."},
				},
				Action: migrate,
			},
			{
				Name:   "timezones",
				Usage:  "Imprime la tabla de zonas activa en formato YAML (sirve como TIMEZONES_FILE).",
				Action: timezones,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	zones, err := loadZones(cfg)
	if err != nil {
		return err
	}

	db, err := openDB(c.Context, cfg, cfg.DB.AutoMigrate)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Logger:      log,
			Zones:       zones,
			DB:          db,
			CORSOrigins: cfg.CORSAllowedOrigins,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "db_driver": cfg.DB.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": cfg.HTTP.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func migrate(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if c.Bool("print") {
		switch cfg.DB.Driver {
		case config.DriverPostgres:
			fmt.Fprint(c.App.Writer, postgres.Schema())
		case config.DriverSQLite:
			fmt.Fprint(c.App.Writer, sqlite.Schema())
		default:
			return fmt.Errorf("driver %q has no schema", cfg.DB.Driver)
		}
		return nil
	}

	if cfg.DB.Driver == config.DriverMemory {
		return errors.New("nothing to migrate: DB_DRIVER is memory")
	}

	db, err := openDB(c.Context, cfg, true)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(c.App.Writer, "schema applied (%s)\n", cfg.DB.Driver)
	return nil
}

func timezones(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zones, err := loadZones(cfg)
	if err != nil {
		return err
	}
	return zones.WriteYAML(c.App.Writer)
}

func loadZones(cfg config.Config) (*scheduling.Registry, error) {
	if cfg.TimezonesFile == "" {
		return scheduling.DefaultRegistry(), nil
	}
	return scheduling.LoadRegistryFile(cfg.TimezonesFile)
}

// openDB devuelve nil para el driver memory.
func openDB(ctx context.Context, cfg config.Config, ensureSchema bool) (*sql.DB, error) {
	var (
		db     *sql.DB
		err    error
		schema func(context.Context, *sql.DB) error
	)

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = postgres.Open(cfg.DB.DSN)
		schema = postgres.EnsureSchema
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.DB.DSN)
		schema = sqlite.EnsureSchema
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DB.Driver, err)
	}

	if ensureSchema {
		if err := schema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	return db, nil
}
