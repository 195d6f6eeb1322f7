package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-scheduler/internal/domain/scheduling"
)

// isoLayout replica el formato de Date.toISOString() (UTC, milisegundos).
const isoLayout = "2006-01-02T15:04:05.000Z"

const namesSeparator = ", "

// ZoneLookup valida etiquetas de zona contra el registry.
type ZoneLookup interface {
	Lookup(label string) (string, bool)
}

// ProfileNames resuelve nombres para los mensajes del log.
// Debe devolver los nombres en el orden de ids e ignorar ids desconocidos.
type ProfileNames interface {
	NamesByIDs(ctx context.Context, ids []string) ([]string, error)
}

// Mutator aplica un Patch sobre un snapshot del evento y genera las
// entradas de log. No persiste nada: el caller guarda el resultado.
type Mutator struct {
	zones ZoneLookup
	names ProfileNames
	now   func() time.Time
}

func NewMutator(zones ZoneLookup, names ProfileNames, now func() time.Time) *Mutator {
	if now == nil {
		now = time.Now
	}
	return &Mutator{zones: zones, names: names, now: now}
}

// Apply devuelve el evento actualizado y las entradas agregadas.
//
// Todas las diferencias se calculan contra current (el snapshot previo).
// Orden fijo de entradas: start, end, timezone, perfiles agregados, perfiles quitados.
// Ante cualquier error se descarta todo (current no se modifica nunca).
func (m *Mutator) Apply(ctx context.Context, current Event, patch Patch, actorID string) (Event, []LogEntry, error) {
	// Validaciones primero: nada se aplica si el input es inválido.
	tzChanged := patch.Timezone.Present && patch.Timezone.Value != current.Timezone
	if tzChanged {
		if _, ok := m.zones.Lookup(patch.Timezone.Value); !ok {
			return current, nil, scheduling.ErrInvalidTimezone
		}
	}

	next := current.Clone()
	actions := make([]string, 0, 5)

	if patch.Start.Present && !patch.Start.Value.Equal(current.Start) {
		actions = append(actions, fmt.Sprintf("Updated start date/time from %s → %s",
			formatISO(current.Start), formatISO(patch.Start.Value)))
		next.Start = patch.Start.Value.UTC()
	}

	if patch.End.Present && !patch.End.Value.Equal(current.End) {
		actions = append(actions, fmt.Sprintf("Updated end date/time from %s → %s",
			formatISO(current.End), formatISO(patch.End.Value)))
		next.End = patch.End.Value.UTC()
	}

	if !next.End.After(next.Start) {
		return current, nil, scheduling.ErrInvalidRange
	}

	if tzChanged {
		actions = append(actions, fmt.Sprintf("Updated timezone from %q → %q",
			current.Timezone, patch.Timezone.Value))
		next.Timezone = patch.Timezone.Value
	}

	added := diffAdded(current, patch.AddProfiles)
	removed := diffRemoved(current, patch.RemoveProfiles)

	if len(current.ProfileIDs)-len(removed)+len(added) == 0 {
		return current, nil, ErrProfilesRequired
	}

	if len(added) > 0 {
		names, err := m.names.NamesByIDs(ctx, added)
		if err != nil {
			return current, nil, fmt.Errorf("resolve added profiles: %w", err)
		}
		actions = append(actions, "Added profiles: "+strings.Join(names, namesSeparator))
	}

	if len(removed) > 0 {
		names, err := m.names.NamesByIDs(ctx, removed)
		if err != nil {
			return current, nil, fmt.Errorf("resolve removed profiles: %w", err)
		}
		actions = append(actions, "Removed profiles: "+strings.Join(names, namesSeparator))
	}

	next.ProfileIDs = mergeMembers(current.ProfileIDs, added, removed)

	if len(actions) == 0 {
		return current, nil, nil
	}

	ts := m.now().UTC()
	entries := make([]LogEntry, 0, len(actions))
	for _, a := range actions {
		entries = append(entries, LogEntry{
			ProfileID: actorID,
			Action:    a,
			Timestamp: ts,
		})
	}
	next.Logs = append(next.Logs, entries...)

	return next, entries, nil
}

// diffAdded: candidatos que no son miembros del snapshot, sin repetidos.
func diffAdded(current Event, f Field[[]string]) []string {
	if !f.Present {
		return nil
	}
	seen := make(map[string]struct{}, len(f.Value))
	out := make([]string, 0, len(f.Value))
	for _, id := range f.Value {
		id = strings.TrimSpace(id)
		if id == "" || current.HasProfile(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// diffRemoved: miembros del snapshot pedidos en la lista, en orden de membresía.
func diffRemoved(current Event, f Field[[]string]) []string {
	if !f.Present || len(f.Value) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(f.Value))
	for _, id := range f.Value {
		want[strings.TrimSpace(id)] = struct{}{}
	}
	out := make([]string, 0)
	for _, id := range current.ProfileIDs {
		if _, ok := want[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func mergeMembers(current, added, removed []string) []string {
	drop := make(map[string]struct{}, len(removed))
	for _, id := range removed {
		drop[id] = struct{}{}
	}
	out := make([]string, 0, len(current)+len(added))
	for _, id := range current {
		if _, ok := drop[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return append(out, added...)
}

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
