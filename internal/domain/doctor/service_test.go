package doctor

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockDoctorRepo struct {
	doctors map[string]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[string]*Doctor)}
}

func (m *mockDoctorRepo) List(_ context.Context) ([]*Doctor, error) {
	var out []*Doctor
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = primitive.NewObjectID()
	m.doctors[d.Email] = d
	return nil
}

func (m *mockDoctorRepo) DeleteByEmail(_ context.Context, email string) error {
	if _, ok := m.doctors[email]; !ok {
		return ErrNotFound
	}
	delete(m.doctors, email)
	return nil
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockDoctorRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		d    *Doctor
	}{
		{"missing name", &Doctor{Email: "d@x.com", Specialty: "Orthodontics"}},
		{"missing email", &Doctor{Name: "Dr. Who", Specialty: "Orthodontics"}},
		{"missing specialty", &Doctor{Name: "Dr. Who", Email: "d@x.com"}},
	}
	for _, tc := range cases {
		if err := svc.Create(ctx, tc.d); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreate_AssignsID(t *testing.T) {
	repo := newMockDoctorRepo()
	svc := NewService(repo)

	d := &Doctor{Name: "Dr. Who", Email: "d@x.com", Specialty: "Orthodontics"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID.IsZero() {
		t.Error("expected id to be assigned")
	}
	if repo.doctors["d@x.com"] == nil {
		t.Error("doctor was not stored")
	}
}

func TestDeleteByEmail(t *testing.T) {
	repo := newMockDoctorRepo()
	repo.doctors["d@x.com"] = &Doctor{Name: "Dr. Who", Email: "d@x.com", Specialty: "Orthodontics"}
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.DeleteByEmail(ctx, "d@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteByEmail(ctx, "d@x.com"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
