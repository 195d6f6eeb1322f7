package profiles

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)

	// FindByIDs devuelve los perfiles existentes; los ids desconocidos se ignoran.
	FindByIDs(ctx context.Context, ids []string) ([]Profile, error)
}
