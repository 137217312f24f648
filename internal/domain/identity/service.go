package identity

import (
	"context"
	"errors"
	"fmt"
)

// TokenIssuer mints a bearer token for a subject email. The auth
// package's Issuer implements it.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type Service struct {
	users  Repository
	issuer TokenIssuer
}

func NewService(users Repository, issuer TokenIssuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// Upsert stores the user's profile keyed by email and issues a fresh
// bearer token for them. Tokens are only ever minted here: holding a
// token proves the subject completed an upsert within its validity
// window.
func (s *Service) Upsert(ctx context.Context, u *User) (string, error) {
	if u.Email == "" {
		return "", fmt.Errorf("email is required")
	}

	if err := s.users.Upsert(ctx, u); err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(u.Email)
	if err != nil {
		return "", fmt.Errorf("issue token for %s: %w", u.Email, err)
	}
	return token, nil
}

// IsAdmin reports whether the email holds the administrator role. An
// unknown user is simply not an admin, not an error.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// Elevate grants the administrator role. The HTTP layer gates this
// behind an existing admin.
func (s *Service) Elevate(ctx context.Context, email string) error {
	return s.users.SetRole(ctx, email, RoleAdmin)
}
