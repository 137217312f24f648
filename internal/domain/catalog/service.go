package catalog

import (
	"context"
	"fmt"
)

type Service struct {
	treatments Repository
}

func NewService(treatments Repository) *Service {
	return &Service{treatments: treatments}
}

func (s *Service) List(ctx context.Context) ([]*Treatment, error) {
	return s.treatments.List(ctx)
}

func (s *Service) GetByName(ctx context.Context, name string) (*Treatment, error) {
	return s.treatments.GetByName(ctx, name)
}

// Names returns the treatment names only, in catalog order. The
// booking UI uses this to populate its treatment selector.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	treatments, err := s.treatments.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(treatments))
	for _, t := range treatments {
		names = append(names, t.Name)
	}
	return names, nil
}

// Upsert seeds or updates one catalog entry. Only administrative
// tooling (the seed command) calls this.
func (s *Service) Upsert(ctx context.Context, t *Treatment) error {
	if t.Name == "" {
		return fmt.Errorf("treatment name is required")
	}
	if len(t.Slots) == 0 {
		return fmt.Errorf("treatment %q has no slots", t.Name)
	}
	return s.treatments.Upsert(ctx, t)
}
