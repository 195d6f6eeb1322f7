package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-scheduler/internal/domain/profiles"
	"event-scheduler/internal/domain/scheduling"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrProfilesRequired = errors.New("profiles are required")
	ErrEventNotFound    = errors.New("event not found")
	ErrConflict         = errors.New("event was modified concurrently")
)

// ProfileLookup evita acoplar events al repositorio de perfiles.
type ProfileLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]profiles.Profile, error)
}

type Service struct {
	repo       Repository
	profiles   ProfileLookup
	zones      *scheduling.Registry
	normalizer *scheduling.Normalizer
	mutator    *Mutator
	validate   *validator.Validate
	now        func() time.Time
}

func NewService(repo Repository, lookup ProfileLookup, zones *scheduling.Registry) *Service {
	s := &Service{
		repo:       repo,
		profiles:   lookup,
		zones:      zones,
		normalizer: scheduling.NewNormalizer(zones),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		now:        time.Now,
	}
	// el mutator usa el reloj del service (tests lo reemplazan)
	s.mutator = NewMutator(zones, profileNames{lookup: lookup}, func() time.Time { return s.now() })
	return s
}

type CreateInput struct {
	ProfileIDs    []string `validate:"required,min=1,dive,required"`
	Timezone      string
	StartDateTime string
	EndDateTime   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Event, error) {
	ids := uniqueTrimmed(in.ProfileIDs)
	if len(ids) == 0 {
		return Event{}, ErrProfilesRequired
	}
	in.ProfileIDs = ids
	if err := s.validate.Struct(in); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sched, err := s.normalizer.Normalize(in.Timezone, in.StartDateTime, in.EndDateTime)
	if err != nil {
		return Event{}, err
	}

	now := s.now().UTC()
	e := Event{
		ID:         uuid.NewString(),
		ProfileIDs: ids,
		Timezone:   in.Timezone,
		Start:      sched.Start,
		End:        sched.End,
		Logs:       []LogEntry{},
		Revision:   1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrEventNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// Logs devuelve el historial en orden cronológico (orden de inserción).
func (s *Service) Logs(ctx context.Context, id string) ([]LogEntry, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Logs == nil {
		return []LogEntry{}, nil
	}
	return e.Logs, nil
}

// UpdateInput es el PATCH tal como llega: punteros nil = campo no enviado.
// Las fechas son hora local de la zona efectiva del evento.
type UpdateInput struct {
	StartDateTime  *string
	EndDateTime    *string
	Timezone       *string
	AddProfiles    []string
	RemoveProfiles []string
}

// Update aplica el patch y guarda todo (campos + logs) en un único Save.
// Si no hay cambios no se escribe nada y se devuelve el evento tal cual.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actorID string) (Event, []LogEntry, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Event{}, nil, err
	}

	patch, err := s.toPatch(current, in)
	if err != nil {
		return Event{}, nil, err
	}
	if patch.IsEmpty() {
		return current, nil, nil
	}

	next, entries, err := s.mutator.Apply(ctx, current, patch, strings.TrimSpace(actorID))
	if err != nil {
		return Event{}, nil, err
	}
	if len(entries) == 0 {
		return current, nil, nil
	}

	next.UpdatedAt = s.now().UTC()
	next.Revision = current.Revision + 1

	if err := s.repo.Save(ctx, next, current.Revision); err != nil {
		if errors.Is(err, ErrConflict) || errors.Is(err, ErrEventNotFound) {
			return Event{}, nil, err
		}
		return Event{}, nil, fmt.Errorf("save event: %w", err)
	}
	return next, entries, nil
}

// toPatch normaliza las fechas en la zona efectiva: la nueva si viene en el
// patch, si no la actual del evento. Strings vacíos cuentan como "no enviado".
func (s *Service) toPatch(current Event, in UpdateInput) (Patch, error) {
	var p Patch

	label := current.Timezone
	if v := trimmed(in.Timezone); v != "" {
		if _, ok := s.zones.Lookup(v); !ok {
			return Patch{}, scheduling.ErrInvalidTimezone
		}
		p.Timezone = Set(v)
		label = v
	}

	if v := trimmed(in.StartDateTime); v != "" {
		t, err := s.normalizer.ParseLocal(label, v)
		if err != nil {
			return Patch{}, err
		}
		p.Start = Set(t)
	}
	if v := trimmed(in.EndDateTime); v != "" {
		t, err := s.normalizer.ParseLocal(label, v)
		if err != nil {
			return Patch{}, err
		}
		p.End = Set(t)
	}

	if len(in.AddProfiles) > 0 {
		p.AddProfiles = Set(in.AddProfiles)
	}
	if len(in.RemoveProfiles) > 0 {
		p.RemoveProfiles = Set(in.RemoveProfiles)
	}

	return p, nil
}

// ResolveProfiles trae en una sola consulta todos los perfiles referenciados
// por los eventos (miembros y actores de logs). Ids colgados simplemente no aparecen.
func (s *Service) ResolveProfiles(ctx context.Context, evs ...Event) (map[string]profiles.Profile, error) {
	ids := make([]string, 0)
	for _, e := range evs {
		ids = append(ids, e.ProfileIDs...)
		for _, l := range e.Logs {
			if l.ProfileID != "" {
				ids = append(ids, l.ProfileID)
			}
		}
	}

	out := make(map[string]profiles.Profile)
	if len(ids) == 0 {
		return out, nil
	}

	found, err := s.profiles.FindByIDs(ctx, uniqueTrimmed(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve profiles: %w", err)
	}
	for _, p := range found {
		out[p.ID] = p
	}
	return out, nil
}

// Zones expone el registry para el endpoint de zonas.
func (s *Service) Zones() []scheduling.Zone {
	return s.zones.Zones()
}

// profileNames adapta ProfileLookup a lo que necesita el Mutator.
type profileNames struct {
	lookup ProfileLookup
}

func (n profileNames) NamesByIDs(ctx context.Context, ids []string) ([]string, error) {
	found, err := n.lookup.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]string, len(found))
	for _, p := range found {
		byID[p.ID] = p.Name
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

func uniqueTrimmed(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
