package user

import (
	"context"
	"errors"
	"testing"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
)

// fakeStore 内存假实现，仅测试用。
type fakeStore struct {
	users map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*User{}}
}

func (f *fakeStore) Create(_ context.Context, u *User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) Save(_ context.Context, u *User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound("user")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (f *fakeStore) List(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) ListByRole(_ context.Context, role authz.Role) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func TestCreateUserDefaultsAndValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{
		Name:     "Jane User",
		Email:    "Jane@Fleet.com",
		Password: "user123",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Role != authz.RoleUser {
		t.Fatalf("expected default role user, got %s", u.Role)
	}
	if u.Email != "jane@fleet.com" {
		t.Fatalf("expected lowercased email, got %s", u.Email)
	}
	if u.PasswordHash == "" || u.PasswordHash == "user123" {
		t.Fatalf("expected hashed password")
	}

	// 缺字段 → ValidationError，且按字段携带信息
	_, err = svc.Create(ctx, CreateUserInput{Email: "bad", Password: "x"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"name", "email", "password"} {
		if _, ok := ve.Fields[f]; !ok {
			t.Fatalf("expected field error for %s, got %v", f, ve.Fields)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Name: "A", Email: "a@fleet.com", Password: "secret1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, CreateUserInput{Name: "B", Email: "A@fleet.com", Password: "secret2"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
	if _, ok := ve.Fields["email"]; !ok {
		t.Fatalf("expected email field error, got %v", ve.Fields)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Name: "A", Email: "a@fleet.com", Password: "secret1", Role: "technician"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := svc.Authenticate(ctx, "a@fleet.com", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.Role != authz.RoleTechnician {
		t.Fatalf("role mismatch: %s", u.Role)
	}

	if _, err := svc.Authenticate(ctx, "a@fleet.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@fleet.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestUpdateUserFullValidation(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "A", Email: "a@fleet.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 合并后的记录必须重跑全部校验
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Name: "", Email: "a@fleet.com", Role: "user"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := svc.Update(ctx, u.ID, UpdateUserInput{Name: "A2", Email: "a2@fleet.com", Role: "technician", Phone: "123"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "A2" || got.Role != authz.RoleTechnician || got.Phone != "123" {
		t.Fatalf("unexpected update result: %+v", got)
	}

	if _, err := svc.Update(ctx, "missing", UpdateUserInput{Name: "X", Email: "x@fleet.com", Role: "user"}); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
