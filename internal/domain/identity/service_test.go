package identity

import (
	"context"
	"testing"
)

type mockUserRepo struct {
	users map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*User)}
}

func (m *mockUserRepo) Upsert(_ context.Context, u *User) error {
	if existing, ok := m.users[u.Email]; ok {
		existing.Name = u.Name
		return nil
	}
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) SetRole(_ context.Context, email, role string) error {
	u, ok := m.users[email]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) EnsureIndexes(_ context.Context) error { return nil }

type staticIssuer struct{}

func (staticIssuer) Issue(email string) (string, error) {
	return "token-for-" + email, nil
}

func TestUpsert_IssuesToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})

	token, err := svc.Upsert(context.Background(), &User{Email: "a@x.com", Name: "Ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-for-a@x.com" {
		t.Errorf("unexpected token %q", token)
	}
	if repo.users["a@x.com"] == nil {
		t.Error("user was not stored")
	}
}

func TestUpsert_RequiresEmail(t *testing.T) {
	svc := NewService(newMockUserRepo(), staticIssuer{})

	if _, err := svc.Upsert(context.Background(), &User{Name: "Ada"}); err == nil {
		t.Error("expected error for missing email")
	}
}

func TestUpsert_PreservesRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo, staticIssuer{})
	ctx := context.Background()

	repo.users["a@x.com"] = &User{Email: "a@x.com", Name: "Ada", Role: RoleAdmin}

	if _, err := svc.Upsert(ctx, &User{Email: "a@x.com", Name: "Ada Lovelace"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := repo.users["a@x.com"]
	if u.Role != RoleAdmin {
		t.Errorf("upsert must not clear the role, got %q", u.Role)
	}
	if u.Name != "Ada Lovelace" {
		t.Errorf("upsert should update the name, got %q", u.Name)
	}
}

func TestIsAdmin_UnknownUser(t *testing.T) {
	svc := NewService(newMockUserRepo(), staticIssuer{})

	isAdmin, err := svc.IsAdmin(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("unknown user must not be an error: %v", err)
	}
	if isAdmin {
		t.Error("unknown user must not be an admin")
	}
}

func TestIsAdmin_Roles(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["admin@x.com"] = &User{Email: "admin@x.com", Role: RoleAdmin}
	repo.users["user@x.com"] = &User{Email: "user@x.com"}
	svc := NewService(repo, staticIssuer{})
	ctx := context.Background()

	if ok, _ := svc.IsAdmin(ctx, "admin@x.com"); !ok {
		t.Error("expected admin@x.com to be admin")
	}
	if ok, _ := svc.IsAdmin(ctx, "user@x.com"); ok {
		t.Error("expected user@x.com to not be admin")
	}
}

func TestElevate(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["a@x.com"] = &User{Email: "a@x.com"}
	svc := NewService(repo, staticIssuer{})
	ctx := context.Background()

	if err := svc.Elevate(ctx, "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.users["a@x.com"].Role != RoleAdmin {
		t.Error("role was not set to admin")
	}

	if err := svc.Elevate(ctx, "nobody@x.com"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
