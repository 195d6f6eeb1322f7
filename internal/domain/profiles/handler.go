package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"event-scheduler/internal/domain/scheduling"
	"event-scheduler/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/profiles", func(pr chi.Router) {
		pr.Post("/", createProfileHandler(svc, log))
		pr.Get("/", listProfilesHandler(svc, log))
		pr.Get("/{profileID}", getProfileHandler(svc, log))
	})
}

// createProfileRequest es el cuerpo para crear un perfil.
type createProfileRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // opcional, default UTC
	Email    string `json:"email"`    // opcional
}

// ProfileResponse es el perfil tal como lo devuelve la API.
// Se exporta porque events lo reutiliza al resolver referencias.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// createProfileHandler godoc
// @Summary Crear perfil
// @Description Crea un perfil (persona). `timezone` debe ser una etiqueta del registry; si no viene se usa "UTC".
// @Tags profiles
// @Accept json
// @Produce json
// @Param payload body createProfileRequest true "Datos del perfil"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} errorResponse "invalid json / name requerido / timezone inválida"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/profiles [post]
func createProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			Timezone: req.Timezone,
			Email:    req.Email,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, "Name is required and email must be valid.")
			case errors.Is(err, scheduling.ErrInvalidTimezone):
				writeError(w, http.StatusBadRequest, "Invalid timezone selected.")
			default:
				log.Error("create profile failed", map[string]any{"error": err.Error()})
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(p))
	}
}

// listProfilesHandler godoc
// @Summary Listar perfiles
// @Tags profiles
// @Produce json
// @Success 200 {array} ProfileResponse
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/profiles [get]
func listProfilesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("list profiles failed", map[string]any{"error": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]ProfileResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getProfileHandler godoc
// @Summary Obtener perfil
// @Tags profiles
// @Produce json
// @Param profileID path string true "ID del perfil"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} errorResponse "profile not found"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/profiles/{profileID} [get]
func getProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "Profile not found")
				return
			}
			log.Error("get profile failed", map[string]any{"error": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(p))
	}
}

func ToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Timezone:  p.Timezone,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (profiles/events)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}
