package authz

import (
	"testing"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
)

func TestCheckRolePolicyTable(t *testing.T) {
	admin := Actor{ID: "u-admin", Role: RoleAdmin}
	tech := Actor{ID: "u-tech", Role: RoleTechnician}
	usr := Actor{ID: "u-user", Role: RoleUser}

	if err := CheckRole(admin, ActionUserWrite); err != nil {
		t.Fatalf("expected admin allowed to write users, got %v", err)
	}
	if err := CheckRole(tech, ActionUserWrite); err == nil {
		t.Fatalf("expected technician denied to write users")
	}
	if err := CheckRole(usr, ActionVehicleList); err == nil {
		t.Fatalf("expected user denied to list vehicles")
	}
	if err := CheckRole(usr, ActionServiceStats); err != nil {
		t.Fatalf("expected stats open to user role, got %v", err)
	}
	if err := CheckRole(tech, ActionServiceStatus); err != nil {
		t.Fatalf("expected technician allowed to reach status update, got %v", err)
	}
	if err := CheckRole(usr, ActionServiceStatus); err == nil {
		t.Fatalf("expected user denied status update")
	}
	if err := CheckRole(admin, Action("unknown.action")); err == nil {
		t.Fatalf("expected unknown action denied")
	}
}

func TestCheckRecordOwnership(t *testing.T) {
	tech1 := Actor{ID: "t-1", Role: RoleTechnician}
	tech2 := Actor{ID: "t-2", Role: RoleTechnician}
	admin := Actor{ID: "a-1", Role: RoleAdmin}

	if err := CheckRecord(tech1, "t-1"); err != nil {
		t.Fatalf("expected assigned technician allowed, got %v", err)
	}
	if err := CheckRecord(admin, "t-1"); err != nil {
		t.Fatalf("expected admin bypass, got %v", err)
	}

	err := CheckRecord(tech2, "t-1")
	if err == nil {
		t.Fatalf("expected unassigned technician denied")
	}
	// 对象级拒绝必须与角色拒绝可区分
	if !apperr.IsDeniedByRecord(err) {
		t.Fatalf("expected record-level denial, got %v", err)
	}

	roleErr := CheckRole(Actor{ID: "u-1", Role: RoleUser}, ActionServiceStatus)
	if apperr.IsDeniedByRecord(roleErr) {
		t.Fatalf("role denial should not be record-level: %v", roleErr)
	}

	// 未登记责任人时，非 admin 一律拒绝
	if err := CheckRecord(tech1, ""); err == nil {
		t.Fatalf("expected denial when no technician is assigned")
	}
}

func TestAuthorizeTwoStage(t *testing.T) {
	tech := Actor{ID: "t-1", Role: RoleTechnician}

	if err := Authorize(tech, ActionServiceStatus, "t-1"); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
	if err := Authorize(tech, ActionServiceStatus, "t-9"); err == nil {
		t.Fatalf("expected record-level denial")
	}
	if err := Authorize(tech, ActionServiceWrite, ""); err == nil {
		t.Fatalf("expected role denial for full service write")
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	if err != nil || r != RoleAdmin {
		t.Fatalf("ParseRole admin: %v %v", r, err)
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected unknown role error")
	}
}
