package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-scheduler/internal/domain/scheduling"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

// ZoneLookup es lo único que necesitamos del registry de zonas.
type ZoneLookup interface {
	Lookup(label string) (string, bool)
}

type Service struct {
	repo     Repository
	zones    ZoneLookup
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository, zones ZoneLookup) *Service {
	return &Service{
		repo:     repo,
		zones:    zones,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

type CreateInput struct {
	Name     string `validate:"required"`
	Timezone string
	Email    string `validate:"omitempty,email"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Timezone = strings.TrimSpace(in.Timezone)

	if err := s.validate.Struct(in); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tz := in.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	if _, ok := s.zones.Lookup(tz); !ok {
		return Profile{}, scheduling.ErrInvalidTimezone
	}

	p := Profile{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Timezone:  tz,
		Email:     in.Email,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

// FindByIDs tolera ids vacíos o repetidos: los filtra antes de ir al store.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]Profile, error) {
	seen := make(map[string]struct{}, len(ids))
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		clean = append(clean, id)
	}
	if len(clean) == 0 {
		return []Profile{}, nil
	}
	return s.repo.FindByIDs(ctx, clean)
}
