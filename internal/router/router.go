package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	_ "event-scheduler/docs"

	mem "event-scheduler/internal/adapters/storage/memory"
	"event-scheduler/internal/adapters/storage/sqlstore"
	"event-scheduler/internal/domain/events"
	"event-scheduler/internal/domain/profiles"
	"event-scheduler/internal/domain/scheduling"
	"event-scheduler/internal/middleware"
	"event-scheduler/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => descarta logs

	// Tabla de zonas. nil => DefaultRegistry().
	Zones *scheduling.Registry

	// Opcional: si viene, usa el store SQL (postgres o sqlite). Si no, in-memory.
	DB *sql.DB

	// Orígenes permitidos para CORS. Vacío => "*".
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	zones := opts.Zones
	if zones == nil {
		zones = scheduling.DefaultRegistry()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.ActingProfile)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.ProfileHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to web service is Running."})
	})

	r.Get("/health", healthHandler(opts.DB))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		profileRepo profiles.Repository
		eventRepo   events.Repository
	)

	if opts.DB != nil {
		profileRepo = sqlstore.NewProfilesRepo(opts.DB)
		eventRepo = sqlstore.NewEventsRepo(opts.DB)
	} else {
		profileRepo = mem.NewProfileRepo()
		eventRepo = mem.NewEventRepo()
	}

	// Services por módulo
	profilesSvc := profiles.NewService(profileRepo, zones)
	eventsSvc := events.NewService(eventRepo, profilesSvc, zones)

	// Rutas por módulo
	profiles.RegisterRoutes(r, profilesSvc, log.With(map[string]any{"module": "profiles"}))
	events.RegisterRoutes(r, eventsSvc, log.With(map[string]any{"module": "events"}))

	return r
}

// healthHandler responde "ok"; con DB además hace ping.
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
