package vehicle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
	"github.com/binduu04/fleet-management-assignment/internal/common/validate"
	"github.com/binduu04/fleet-management-assignment/internal/user"
)

// Store 抽象 vehicle 持久化，便于在测试里用假实现替换。
type Store interface {
	Create(ctx context.Context, v *Vehicle) error
	Save(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	FindByNumber(ctx context.Context, number string) (*Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)
	ListByAssignee(ctx context.Context, userID string) ([]Vehicle, error)
}

// UserFinder 弱引用解析需要的最小 user 查询能力。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Service 封装 vehicle 领域用例。
type Service struct {
	store Store
	users UserFinder
}

func NewService(store Store, users UserFinder) *Service {
	return &Service{store: store, users: users}
}

// VehicleInput 创建/全量更新共用的入参。
type VehicleInput struct {
	VehicleNumber string `json:"vehicleNumber" validate:"required"`
	Make          string `json:"make" validate:"required"`
	Model         string `json:"model" validate:"required"`
	Year          int    `json:"year" validate:"required,gte=1900"`
	Type          string `json:"type" validate:"omitempty,oneof=car truck van bus motorcycle other"`
	AssignedTo    string `json:"assignedTo"`
	Mileage       int    `json:"mileage" validate:"gte=0"`
	Status        string `json:"status" validate:"omitempty,oneof=active maintenance inactive"`
}

// normalize 入参清洗：车牌号统一大写，枚举空值落默认。
func (in *VehicleInput) normalize() {
	in.VehicleNumber = strings.ToUpper(strings.TrimSpace(in.VehicleNumber))
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
	if in.Type == "" {
		in.Type = string(TypeCar)
	}
	if in.Status == "" {
		in.Status = string(StatusActive)
	}
}

func (s *Service) Create(ctx context.Context, in VehicleInput) (*Vehicle, error) {
	in.normalize()
	if err := s.validateInput(ctx, in, ""); err != nil {
		return nil, err
	}

	v := &Vehicle{
		ID:            uuid.NewString(),
		VehicleNumber: in.VehicleNumber,
		Make:          in.Make,
		Model:         in.Model,
		Year:          in.Year,
		Type:          Type(in.Type),
		AssignedTo:    in.AssignedTo,
		Mileage:       in.Mileage,
		Status:        Status(in.Status),
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update 全量更新：合并后的记录重跑与创建相同的校验。
func (s *Service) Update(ctx context.Context, id string, in VehicleInput) (*Vehicle, error) {
	v, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := s.validateInput(ctx, in, v.ID); err != nil {
		return nil, err
	}

	v.VehicleNumber = in.VehicleNumber
	v.Make = in.Make
	v.Model = in.Model
	v.Year = in.Year
	v.Type = Type(in.Type)
	v.AssignedTo = in.AssignedTo
	v.Mileage = in.Mileage
	v.Status = Status(in.Status)

	if err := s.store.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByAssignee(ctx context.Context, userID string) ([]Vehicle, error) {
	return s.store.ListByAssignee(ctx, userID)
}

// Assign 把车辆分配给用户（userID 为空表示取消分配）。
// 与原始行为保持一致：不校验用户是否存在，读取侧按弱引用降级。
func (s *Service) Assign(ctx context.Context, id, userID string) (*Vehicle, error) {
	v, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v.AssignedTo = strings.TrimSpace(userID)
	if err := s.store.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// validateInput 字段校验 + 动态年份上界 + 车牌号唯一性。
// excludeID 用于更新时排除自身。
func (s *Service) validateInput(ctx context.Context, in VehicleInput, excludeID string) error {
	ve := validate.Collect(in)

	maxYear := time.Now().Year() + 1
	if in.Year > maxYear {
		ve.Add("year", fmt.Sprintf("must be at most %d", maxYear))
	}

	if in.VehicleNumber != "" {
		existing, err := s.store.FindByNumber(ctx, in.VehicleNumber)
		if err != nil && !apperr.IsNotFound(err) {
			return err
		}
		if err == nil && existing.ID != excludeID {
			ve.Add("vehicleNumber", "is already in use")
		}
	}

	return ve.OrNil()
}
