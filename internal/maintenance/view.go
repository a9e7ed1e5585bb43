package maintenance

import (
	"context"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
	"github.com/binduu04/fleet-management-assignment/internal/user"
	"github.com/binduu04/fleet-management-assignment/internal/vehicle"
)

// View 读取响应：三个引用字段展开为精简投影。
// 任一引用悬挂时该字段降级为 null，不影响整条记录返回。
type View struct {
	Service
	Vehicle            *vehicle.Summary `json:"vehicle"`
	AssignedTechnician *user.Summary    `json:"assignedTechnician"`
	CreatedBy          *user.Summary    `json:"createdBy"`
}

// Resolve 展开单条工单的弱引用。
func (m *Manager) Resolve(ctx context.Context, s *Service) (*View, error) {
	view := &View{Service: *s}

	if s.VehicleID != "" {
		v, err := m.vehicles.FindByID(ctx, s.VehicleID)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		view.Vehicle = v.Summarize()
	}

	tech, err := m.resolveUser(ctx, s.AssignedTechnician)
	if err != nil {
		return nil, err
	}
	view.AssignedTechnician = tech

	creator, err := m.resolveUser(ctx, s.CreatedBy)
	if err != nil {
		return nil, err
	}
	view.CreatedBy = creator

	return view, nil
}

func (m *Manager) resolveUser(ctx context.Context, id string) (*user.Summary, error) {
	if id == "" {
		return nil, nil
	}
	u, err := m.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return u.Summarize(false), nil
}

// ResolveAll 批量展开。
func (m *Manager) ResolveAll(ctx context.Context, services []Service) ([]View, error) {
	views := make([]View, 0, len(services))
	for i := range services {
		v, err := m.Resolve(ctx, &services[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}
