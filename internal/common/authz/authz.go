package authz

import (
	"fmt"
	"strings"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
)

// Role 粗粒度权限类别（RBAC）。
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleUser       Role = "user"
)

// ParseRole 解析角色字符串（大小写不敏感）。
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleTechnician:
		return RoleTechnician, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role: %s", s)
}

// Actor 执行操作的已认证身份（由传输层解析 JWT 得到）。
type Actor struct {
	ID   string
	Role Role
}

// Action 业务动作，粒度为 (动作, 实体类型)。
type Action string

const (
	ActionUserList  Action = "user.list"
	ActionUserRead  Action = "user.read"
	ActionUserWrite Action = "user.write" // create / update / delete

	ActionVehicleList  Action = "vehicle.list"
	ActionVehicleRead  Action = "vehicle.read"
	ActionVehicleWrite Action = "vehicle.write"
	ActionVehicleMine  Action = "vehicle.mine" // 查询分配给自己的车辆

	ActionServiceList     Action = "service.list"
	ActionServiceRead     Action = "service.read"
	ActionServiceWrite    Action = "service.write"
	ActionServiceStatus   Action = "service.status" // 状态/备注更新（对象级规则见 CheckRecord）
	ActionServiceMineTech Action = "service.mine.technician"
	ActionServiceMineUser Action = "service.mine.user"
	ActionServiceStats    Action = "service.stats"
)

// rolePolicy 角色策略表（第一阶段）。
// 没出现在表里的动作一律拒绝；对象级规则（第二阶段）见 CheckRecord。
var rolePolicy = map[Action][]Role{
	ActionUserList:  {RoleAdmin},
	ActionUserRead:  {RoleAdmin},
	ActionUserWrite: {RoleAdmin},

	ActionVehicleList:  {RoleAdmin},
	ActionVehicleRead:  {RoleAdmin},
	ActionVehicleWrite: {RoleAdmin},
	ActionVehicleMine:  {RoleAdmin, RoleTechnician, RoleUser},

	ActionServiceList:     {RoleAdmin},
	ActionServiceRead:     {RoleAdmin},
	ActionServiceWrite:    {RoleAdmin},
	ActionServiceStatus:   {RoleAdmin, RoleTechnician},
	ActionServiceMineTech: {RoleTechnician},
	ActionServiceMineUser: {RoleUser},
	ActionServiceStats:    {RoleAdmin, RoleTechnician, RoleUser},
}

// AllowedRoles 返回动作允许的角色列表（副本）。
func AllowedRoles(action Action) []Role {
	rs := rolePolicy[action]
	out := make([]Role, len(rs))
	copy(out, rs)
	return out
}

// CheckRole 第一阶段：角色策略检查。
// 通过返回 nil，拒绝返回 apperr.DeniedError（Kind=DeniedByRole）。
func CheckRole(actor Actor, action Action) error {
	required, ok := rolePolicy[action]
	if !ok {
		return apperr.DenyRole(fmt.Sprintf("action %s is not permitted", action))
	}
	for _, r := range required {
		if actor.Role == r {
			return nil
		}
	}
	return apperr.DenyRole(fmt.Sprintf("role %s is not authorized to %s", actor.Role, action))
}

// CheckRecord 第二阶段：对象级责任人检查，叠加在角色检查之上。
// admin 直接放行；其余角色要求 actor 即为记录上登记的责任人（ownerID）。
// 拒绝时返回与角色拒绝可区分的错误（Kind=DeniedByRecord）。
func CheckRecord(actor Actor, ownerID string) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if ownerID != "" && ownerID == actor.ID {
		return nil
	}
	return apperr.DenyRecord("not authorized to update this record")
}

// Authorize 两阶段合一：先查角色表，再查对象级规则。
// ownerID 为空串表示该动作没有对象级规则。
func Authorize(actor Actor, action Action, ownerID string) error {
	if err := CheckRole(actor, action); err != nil {
		return err
	}
	if action == ActionServiceStatus {
		return CheckRecord(actor, ownerID)
	}
	return nil
}
