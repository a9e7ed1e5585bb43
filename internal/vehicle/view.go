package vehicle

import (
	"context"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
	"github.com/binduu04/fleet-management-assignment/internal/user"
)

// View 读取响应：AssignedTo 展开为引用用户的精简投影。
// 引用悬挂（用户已删除）时降级为 null，不中断整条记录的读取。
type View struct {
	Vehicle
	AssignedTo *user.Summary `json:"assignedTo"`
}

// Resolve 展开单条记录的弱引用。withPhone 控制是否带出联系电话（详情接口带，列表不带）。
func (s *Service) Resolve(ctx context.Context, v *Vehicle, withPhone bool) (*View, error) {
	view := &View{Vehicle: *v}
	if v.AssignedTo == "" {
		return view, nil
	}
	u, err := s.users.FindByID(ctx, v.AssignedTo)
	if err != nil {
		if apperr.IsNotFound(err) {
			return view, nil
		}
		return nil, err
	}
	view.AssignedTo = u.Summarize(withPhone)
	return view, nil
}

// ResolveAll 批量展开。
func (s *Service) ResolveAll(ctx context.Context, vehicles []Vehicle, withPhone bool) ([]View, error) {
	views := make([]View, 0, len(vehicles))
	for i := range vehicles {
		v, err := s.Resolve(ctx, &vehicles[i], withPhone)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}
