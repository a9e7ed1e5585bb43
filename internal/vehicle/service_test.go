package vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
	"github.com/binduu04/fleet-management-assignment/internal/user"
)

type fakeStore struct {
	vehicles map[string]*Vehicle
}

func newFakeStore() *fakeStore {
	return &fakeStore{vehicles: make(map[string]*Vehicle)}
}

func (f *fakeStore) Create(_ context.Context, v *Vehicle) error {
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeStore) Save(_ context.Context, v *Vehicle) error {
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return apperr.NotFound("vehicle")
	}
	delete(f.vehicles, id)
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, apperr.NotFound("vehicle")
	}
	cp := *v
	return &cp, nil
}

func (f *fakeStore) FindByNumber(_ context.Context, number string) (*Vehicle, error) {
	for _, v := range f.vehicles {
		if v.VehicleNumber == number {
			cp := *v
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("vehicle")
}

func (f *fakeStore) List(_ context.Context) ([]Vehicle, error) {
	out := make([]Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeStore) ListByAssignee(_ context.Context, userID string) ([]Vehicle, error) {
	var out []Vehicle
	for _, v := range f.vehicles {
		if v.AssignedTo == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

type fakeUserFinder struct {
	users map[string]*user.User
}

func (f *fakeUserFinder) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return u, nil
}

func TestCreateNormalizesNumberAndDefaults(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeUserFinder{})

	v, err := svc.Create(context.Background(), VehicleInput{
		VehicleNumber: "  abc123 ",
		Make:          "Toyota",
		Model:         "Camry",
		Year:          2022,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.VehicleNumber != "ABC123" {
		t.Fatalf("expected uppercase number, got %q", v.VehicleNumber)
	}
	if v.Type != TypeCar {
		t.Fatalf("expected default type car, got %q", v.Type)
	}
	if v.Status != StatusActive {
		t.Fatalf("expected default status active, got %q", v.Status)
	}
}

func TestCreateRejectsDuplicateNumberIgnoringCase(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeUserFinder{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, VehicleInput{VehicleNumber: "ABC123", Make: "Toyota", Model: "Camry", Year: 2022}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, VehicleInput{VehicleNumber: "abc123", Make: "Honda", Model: "Civic", Year: 2021})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := ve.Fields["vehicleNumber"]; !ok {
		t.Fatalf("expected vehicleNumber field error, got %v", ve.Fields)
	}
}

func TestCreateValidatesYearBounds(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeUserFinder{})
	ctx := context.Background()

	_, err := svc.Create(ctx, VehicleInput{VehicleNumber: "OLD1", Make: "Ford", Model: "T", Year: 1899})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for year 1899, got %v", err)
	}

	future := time.Now().Year() + 2
	_, err = svc.Create(ctx, VehicleInput{VehicleNumber: "FUT1", Make: "Tesla", Model: "X", Year: future})
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error for year %d, got %v", future, err)
	}
	if _, ok := ve.Fields["year"]; !ok {
		t.Fatalf("expected year field error, got %v", ve.Fields)
	}
}

func TestUpdateRevalidatesMergedRecord(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeUserFinder{})
	ctx := context.Background()

	v1, err := svc.Create(ctx, VehicleInput{VehicleNumber: "ABC123", Make: "Toyota", Model: "Camry", Year: 2022})
	if err != nil {
		t.Fatalf("create v1: %v", err)
	}
	if _, err := svc.Create(ctx, VehicleInput{VehicleNumber: "XYZ789", Make: "Honda", Model: "Civic", Year: 2021}); err != nil {
		t.Fatalf("create v2: %v", err)
	}

	// 改成别人的车牌号要被唯一性校验拦住。
	_, err = svc.Update(ctx, v1.ID, VehicleInput{VehicleNumber: "xyz789", Make: "Toyota", Model: "Camry", Year: 2022})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// 保留自己的车牌号不算冲突。
	got, err := svc.Update(ctx, v1.ID, VehicleInput{VehicleNumber: "abc123", Make: "Toyota", Model: "Corolla", Year: 2023, Mileage: 500})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Model != "Corolla" || got.Year != 2023 || got.Mileage != 500 {
		t.Fatalf("unexpected merged record: %+v", got)
	}
}

func TestUpdateMissingVehicle(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeUserFinder{})

	_, err := svc.Update(context.Background(), "nope", VehicleInput{VehicleNumber: "A1", Make: "M", Model: "M", Year: 2020})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignAndUnassign(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeUserFinder{})
	ctx := context.Background()

	v, err := svc.Create(ctx, VehicleInput{VehicleNumber: "ABC123", Make: "Toyota", Model: "Camry", Year: 2022})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Assign(ctx, v.ID, "user-1")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got.AssignedTo != "user-1" {
		t.Fatalf("expected assignment, got %q", got.AssignedTo)
	}

	mine, err := svc.ListByAssignee(ctx, "user-1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected one assigned vehicle, got %d err=%v", len(mine), err)
	}

	got, err = svc.Assign(ctx, v.ID, "")
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if got.AssignedTo != "" {
		t.Fatalf("expected unassigned, got %q", got.AssignedTo)
	}
}

func TestResolveDegradesOnDanglingAssignee(t *testing.T) {
	store := newFakeStore()
	users := &fakeUserFinder{users: map[string]*user.User{
		"u1": {ID: "u1", Name: "Fleet User", Email: "user@fleet.com", Phone: "555-0100"},
	}}
	svc := NewService(store, users)
	ctx := context.Background()

	v, err := svc.Create(ctx, VehicleInput{VehicleNumber: "ABC123", Make: "Toyota", Model: "Camry", Year: 2022, AssignedTo: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.Resolve(ctx, v, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if view.AssignedTo == nil || view.AssignedTo.Name != "Fleet User" {
		t.Fatalf("expected resolved assignee, got %+v", view.AssignedTo)
	}
	if view.AssignedTo.Phone != "555-0100" {
		t.Fatalf("expected phone on detail view, got %q", view.AssignedTo.Phone)
	}

	// 被引用用户删除后降级为 null，而不是报错。
	delete(users.users, "u1")
	view, err = svc.Resolve(ctx, v, false)
	if err != nil {
		t.Fatalf("resolve dangling: %v", err)
	}
	if view.AssignedTo != nil {
		t.Fatalf("expected nil assignee for dangling ref, got %+v", view.AssignedTo)
	}
}
