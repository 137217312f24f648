package doctor

import (
	"context"
	"fmt"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) List(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if d.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) DeleteByEmail(ctx context.Context, email string) error {
	return s.doctors.DeleteByEmail(ctx, email)
}
