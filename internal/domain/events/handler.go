package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"event-scheduler/internal/domain/profiles"
	"event-scheduler/internal/domain/scheduling"
	"event-scheduler/internal/middleware"
	"event-scheduler/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc, log))
		er.Get("/", listEventsHandler(svc, log))

		er.Get("/{eventID}", getEventHandler(svc, log))
		er.Put("/{eventID}", updateEventHandler(svc, log))
		er.Get("/{eventID}/logs", eventLogsHandler(svc, log))
		er.Get("/{eventID}/ics", eventICSHandler(svc, log))
	})

	r.Get("/api/timezones", listTimezonesHandler(svc))
}

// createEventRequest es el cuerpo para crear un evento.
// Las fechas son hora local de `timezone` (ej: 2025-01-01T10:00).
type createEventRequest struct {
	Profiles      []string `json:"profiles"`
	Timezone      string   `json:"timezone"`
	StartDateTime string   `json:"startDateTime"`
	EndDateTime   string   `json:"endDateTime"`
}

// updateEventRequest: todos los campos son opcionales (PATCH semántico sobre PUT).
type updateEventRequest struct {
	StartDateTime  *string  `json:"startDateTime"`
	EndDateTime    *string  `json:"endDateTime"`
	Timezone       *string  `json:"timezone"`
	AddProfiles    []string `json:"addProfiles"`
	RemoveProfiles []string `json:"removeProfiles"`

	// ProfileID es el perfil que hace el cambio. Si no viene se usa X-Profile-ID.
	ProfileID *string `json:"profileId"`
}

// actorResponse es la referencia resuelta de un perfil dentro de un evento/log.
type actorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type logEntryResponse struct {
	Profile   *actorResponse `json:"profile"` // null si no hay actor o no existe
	Action    string         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
}

// eventResponse representa un evento con sus perfiles resueltos.
type eventResponse struct {
	ID            string                     `json:"id"`
	ProfileIDs    []string                   `json:"profileIds"`
	Profiles      []profiles.ProfileResponse `json:"profiles"`
	Timezone      string                     `json:"timezone"`
	StartDateTime time.Time                  `json:"startDateTime"`
	EndDateTime   time.Time                  `json:"endDateTime"`
	Logs          []logEntryResponse         `json:"logs"`
	Revision      int64                      `json:"revision"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Crea un evento para uno o más perfiles. `startDateTime`/`endDateTime` se interpretan en la zona `timezone` y se guardan en UTC.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body createEventRequest true "Datos del evento"
// @Success 201 {object} eventResponse
// @Failure 400 {object} errorResponse "profiles requeridos / timezone inválida / fechas inválidas / end <= start"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/events [post]
func createEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			ProfileIDs:    req.Profiles,
			Timezone:      req.Timezone,
			StartDateTime: req.StartDateTime,
			EndDateTime:   req.EndDateTime,
		})
		if err != nil {
			writeServiceError(w, log, "create event failed", err)
			return
		}

		writeEvent(w, r, svc, log, http.StatusCreated, e)
	}
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Lista todos los eventos con los perfiles resueltos.
// @Tags events
// @Produce json
// @Success 200 {array} eventResponse
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/events [get]
func listEventsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, log, "list events failed", err)
			return
		}

		dir, err := svc.ResolveProfiles(r.Context(), items...)
		if err != nil {
			writeServiceError(w, log, "list events failed", err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e, dir))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Obtener evento
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 404 {object} errorResponse "event not found"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/events/{eventID} [get]
func getEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, log, "get event failed", err)
			return
		}

		writeEvent(w, r, svc, log, http.StatusOK, e)
	}
}

// updateEventHandler godoc
// @Summary Actualizar evento
// @Description Update parcial: fechas, zona y membresía. Cada cambio agrega una entrada al log atribuida a `profileId` (o header `X-Profile-ID`).
// @Tags events
// @Accept json
// @Produce json
// @Param X-Profile-ID header string false "Perfil que realiza el cambio (si no viene profileId en el body)"
// @Param eventID path string true "ID del evento"
// @Param payload body updateEventRequest true "Campos a modificar"
// @Success 200 {object} eventResponse
// @Failure 400 {object} errorResponse "timezone inválida / fechas inválidas / end <= start"
// @Failure 404 {object} errorResponse "event not found"
// @Failure 409 {object} errorResponse "modificación concurrente, reintentar"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/events/{eventID} [put]
func updateEventHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		actorID := trimmed(req.ProfileID)
		if actorID == "" {
			actorID, _ = middleware.ActingProfileID(r.Context())
		}

		eventID := chi.URLParam(r, "eventID")
		updated, entries, err := svc.Update(r.Context(), eventID, UpdateInput{
			StartDateTime:  req.StartDateTime,
			EndDateTime:    req.EndDateTime,
			Timezone:       req.Timezone,
			AddProfiles:    req.AddProfiles,
			RemoveProfiles: req.RemoveProfiles,
		}, actorID)
		if err != nil {
			writeServiceError(w, log, "update event failed", err)
			return
		}

		if len(entries) > 0 {
			log.Info("event updated", map[string]any{
				"event_id": eventID,
				"actor":    actorID,
				"changes":  len(entries),
				"revision": updated.Revision,
			})
		}

		writeEvent(w, r, svc, log, http.StatusOK, updated)
	}
}

// eventLogsHandler godoc
// @Summary Historial de cambios de un evento
// @Description Devuelve las entradas del log en orden cronológico, con el actor resuelto (o null).
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {array} logEntryResponse
// @Failure 404 {object} errorResponse "event not found"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/events/{eventID}/logs [get]
func eventLogsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, log, "get event logs failed", err)
			return
		}

		dir, err := svc.ResolveProfiles(r.Context(), Event{Logs: e.Logs})
		if err != nil {
			writeServiceError(w, log, "get event logs failed", err)
			return
		}

		writeJSON(w, http.StatusOK, toLogResponses(e.Logs, dir))
	}
}

// eventICSHandler godoc
// @Summary Exportar evento como iCalendar
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "ID del evento"
// @Success 200 {string} string "VCALENDAR"
// @Failure 404 {object} errorResponse "event not found"
// @Failure 500 {object} errorResponse "internal error"
// @Router /api/events/{eventID}/ics [get]
func eventICSHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, log, "export event failed", err)
			return
		}

		dir, err := svc.ResolveProfiles(r.Context(), Event{ProfileIDs: e.ProfileIDs})
		if err != nil {
			writeServiceError(w, log, "export event failed", err)
			return
		}

		members := make([]profiles.Profile, 0, len(e.ProfileIDs))
		for _, id := range e.ProfileIDs {
			if p, ok := dir[id]; ok {
				members = append(members, p)
			}
		}

		// Se serializa a un buffer para poder responder 500 si falla el encoder.
		var buf bytes.Buffer
		if err := WriteICS(&buf, e, members, svc.now()); err != nil {
			writeServiceError(w, log, "export event failed", err)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+e.ID+`.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// listTimezonesHandler godoc
// @Summary Listar zonas horarias soportadas
// @Tags timezones
// @Produce json
// @Success 200 {array} scheduling.Zone
// @Router /api/timezones [get]
func listTimezonesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, svc.Zones())
	}
}

func writeEvent(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger, status int, e Event) {
	dir, err := svc.ResolveProfiles(r.Context(), e)
	if err != nil {
		writeServiceError(w, log, "resolve event profiles failed", err)
		return
	}
	writeJSON(w, status, toEventResponse(e, dir))
}

func toEventResponse(e Event, dir map[string]profiles.Profile) eventResponse {
	members := make([]profiles.ProfileResponse, 0, len(e.ProfileIDs))
	for _, id := range e.ProfileIDs {
		if p, ok := dir[id]; ok {
			members = append(members, profiles.ToResponse(p))
		}
	}

	ids := e.ProfileIDs
	if ids == nil {
		ids = []string{}
	}

	return eventResponse{
		ID:            e.ID,
		ProfileIDs:    ids,
		Profiles:      members,
		Timezone:      e.Timezone,
		StartDateTime: e.Start,
		EndDateTime:   e.End,
		Logs:          toLogResponses(e.Logs, dir),
		Revision:      e.Revision,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toLogResponses(logs []LogEntry, dir map[string]profiles.Profile) []logEntryResponse {
	out := make([]logEntryResponse, 0, len(logs))
	for _, l := range logs {
		item := logEntryResponse{Action: l.Action, Timestamp: l.Timestamp}
		// referencia colgada o sin actor => null, nunca error
		if p, ok := dir[l.ProfileID]; ok && l.ProfileID != "" {
			item.Profile = &actorResponse{ID: p.ID, Name: p.Name, Email: p.Email}
		}
		out = append(out, item)
	}
	return out
}

// writeServiceError traduce errores de dominio a status HTTP.
// Errores de store no se exponen: van al log y el cliente ve "internal error".
func writeServiceError(w http.ResponseWriter, log logger.Logger, msg string, err error) {
	switch {
	case errors.Is(err, ErrProfilesRequired):
		writeError(w, http.StatusBadRequest, "Profiles are required.")
	case errors.Is(err, scheduling.ErrInvalidTimezone):
		writeError(w, http.StatusBadRequest, "Invalid timezone selected.")
	case errors.Is(err, scheduling.ErrInvalidDateTime):
		writeError(w, http.StatusBadRequest, "Invalid date/time.")
	case errors.Is(err, scheduling.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "End date/time must be after start date/time.")
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, ErrEventNotFound):
		writeError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "Event was modified concurrently, retry.")
	default:
		log.Error(msg, map[string]any{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
// Si más adelante se repite en más módulos, recién conviene extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: strings.TrimSpace(msg)})
}
