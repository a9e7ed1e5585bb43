package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
	"github.com/binduu04/fleet-management-assignment/internal/common/validate"
	"github.com/binduu04/fleet-management-assignment/internal/user"
	"github.com/binduu04/fleet-management-assignment/internal/vehicle"
)

// Store 抽象工单持久化。
type Store interface {
	Create(ctx context.Context, s *Service) error
	Save(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context) ([]Service, error)
	ListByVehicleIDs(ctx context.Context, vehicleIDs []string) ([]Service, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]Service, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	CountByType(ctx context.Context) (map[ServiceType]int64, error)
}

// VehicleFinder 创建校验与“我的工单”解析需要的车辆查询能力。
type VehicleFinder interface {
	FindByID(ctx context.Context, id string) (*vehicle.Vehicle, error)
	ListByAssignee(ctx context.Context, userID string) ([]vehicle.Vehicle, error)
}

// UserFinder 弱引用解析需要的最小 user 查询能力。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Manager 封装工单领域用例。
type Manager struct {
	store    Store
	vehicles VehicleFinder
	users    UserFinder
}

func NewManager(store Store, vehicles VehicleFinder, users UserFinder) *Manager {
	return &Manager{store: store, vehicles: vehicles, users: users}
}

// ServiceInput 创建/全量更新共用的入参。
type ServiceInput struct {
	VehicleID          string    `json:"vehicle" validate:"required"`
	ServiceType        string    `json:"serviceType" validate:"omitempty,oneof=oil-change tire-rotation brake-service engine-repair inspection battery-replacement transmission-service other"`
	Description        string    `json:"description"`
	ScheduledDate      time.Time `json:"scheduledDate" validate:"required"`
	Status             string    `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	AssignedTechnician string    `json:"assignedTechnician"`
	Cost               float64   `json:"cost" validate:"gte=0"`
	Notes              string    `json:"notes"`
}

func (in *ServiceInput) normalize() {
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	in.AssignedTechnician = strings.TrimSpace(in.AssignedTechnician)
	if in.ServiceType == "" {
		in.ServiceType = string(TypeInspection)
	}
	if in.Status == "" {
		in.Status = string(StatusPending)
	}
}

// Create 新建工单。引用的车辆必须存在；CreatedBy 取当前操作者，不信任入参。
func (m *Manager) Create(ctx context.Context, actor authz.Actor, in ServiceInput) (*Service, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := m.vehicles.FindByID(ctx, in.VehicleID); err != nil {
		return nil, err
	}

	s := &Service{
		ID:                 uuid.NewString(),
		VehicleID:          in.VehicleID,
		ServiceType:        ServiceType(in.ServiceType),
		Description:        in.Description,
		ScheduledDate:      in.ScheduledDate,
		Status:             Status(in.Status),
		AssignedTechnician: in.AssignedTechnician,
		Cost:               in.Cost,
		Notes:              in.Notes,
		CreatedBy:          actor.ID,
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update 全量更新（admin 专用，路由层已按角色拦截）。
// 合并后的记录重跑与创建相同的字段校验；CreatedBy 保持原值。
func (m *Manager) Update(ctx context.Context, id string, in ServiceInput) (*Service, error) {
	s, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	s.VehicleID = in.VehicleID
	s.ServiceType = ServiceType(in.ServiceType)
	s.Description = in.Description
	s.ScheduledDate = in.ScheduledDate
	s.Status = Status(in.Status)
	s.AssignedTechnician = in.AssignedTechnician
	s.Cost = in.Cost
	s.Notes = in.Notes

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// StatusInput 仅状态更新的入参，technician 只能改这两个字段。
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed cancelled"`
	Notes  string `json:"notes"`
}

// UpdateStatus 状态更新。先查存在性，再做对象级鉴权：admin 直通，
// technician 必须是该工单的 assignedTechnician。两类失败分别返回
// NotFound 和 DeniedByRecord，调用方据此渲染 404 / 403。
func (m *Manager) UpdateStatus(ctx context.Context, actor authz.Actor, id string, in StatusInput) (*Service, error) {
	s, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionServiceStatus, s.AssignedTechnician); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if err := ApplyTransition(s, Status(in.Status)); err != nil {
		return nil, err
	}
	if in.Notes != "" {
		s.Notes = in.Notes
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) Get(ctx context.Context, id string) (*Service, error) {
	return m.store.FindByID(ctx, id)
}

func (m *Manager) List(ctx context.Context) ([]Service, error) {
	return m.store.List(ctx)
}

// TechnicianServices 指派给该技师的全部工单。
func (m *Manager) TechnicianServices(ctx context.Context, technicianID string) ([]Service, error) {
	return m.store.ListByTechnician(ctx, technicianID)
}

// UserServices 该用户名下车辆对应的全部工单：先取 assignedTo 为该用户的
// 车辆集合，再按 vehicle id 集合查工单。没有车辆时返回空集。
func (m *Manager) UserServices(ctx context.Context, userID string) ([]Service, error) {
	vehicles, err := m.vehicles.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(vehicles))
	for i := range vehicles {
		ids = append(ids, vehicles[i].ID)
	}
	return m.store.ListByVehicleIDs(ctx, ids)
}

// Stats 两组独立的全量分组计数，只含非零分组。
type Stats struct {
	ByStatus      map[Status]int64      `json:"byStatus"`
	ByServiceType map[ServiceType]int64 `json:"byServiceType"`
}

func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	byStatus, err := m.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := m.store.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{ByStatus: byStatus, ByServiceType: byType}, nil
}
