package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"event-scheduler/internal/domain/events"
)

// eventRepo guarda copias: lo que devuelve nunca comparte slices con el store.
type eventRepo struct {
	mu    sync.RWMutex
	byID  map[string]events.Event
	order []string
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID: make(map[string]events.Event),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e.Clone()
	r.order = append(r.order, e.ID)
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.Event{}, events.ErrEventNotFound
	}
	return e.Clone(), nil
}

func (r *eventRepo) List(ctx context.Context) ([]events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}

// Save es compare-and-swap sobre Revision: el lock cubre lectura y escritura.
func (r *eventRepo) Save(ctx context.Context, e events.Event, expectedRevision int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[e.ID]
	if !ok {
		return events.ErrEventNotFound
	}
	if cur.Revision != expectedRevision {
		return events.ErrConflict
	}

	r.byID[e.ID] = e.Clone()
	return nil
}
