package events

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context) ([]Event, error)

	// Save persiste campos, perfiles y logs nuevos en una sola operación atómica.
	// Falla con ErrConflict si la revisión guardada no es expectedRevision.
	Save(ctx context.Context, e Event, expectedRevision int64) error
}
