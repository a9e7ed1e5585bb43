package maintenance

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/binduu04/fleet-management-assignment/internal/common/apperr"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, s *Service) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(s).Error
}

func (r *Repo) Save(ctx context.Context, s *Service) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Save(s).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := db.Where("id = ?", id).Delete(&Service{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("service")
	}
	return nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Service, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var s Service
	if err := db.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service")
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) List(ctx context.Context) ([]Service, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var services []Service
	if err := db.Order("scheduled_date desc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *Repo) ListByVehicleIDs(ctx context.Context, vehicleIDs []string) ([]Service, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	if len(vehicleIDs) == 0 {
		return []Service{}, nil
	}
	var services []Service
	if err := db.Where("vehicle_id IN ?", vehicleIDs).Order("scheduled_date desc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *Repo) ListByTechnician(ctx context.Context, technicianID string) ([]Service, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var services []Service
	if err := db.Where("assigned_technician = ?", technicianID).Order("scheduled_date desc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

type statusCount struct {
	Status Status `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

type typeCount struct {
	ServiceType ServiceType `gorm:"column:service_type"`
	Count       int64       `gorm:"column:count"`
}

// CountByStatus 按状态分组计数，只返回非零分组（稀疏 map）。
func (r *Repo) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rows []statusCount
	if err := db.Model(&Service{}).Select("status, count(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// CountByType 按类型分组计数，稀疏 map。
func (r *Repo) CountByType(ctx context.Context) (map[ServiceType]int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rows []typeCount
	if err := db.Model(&Service{}).Select("service_type, count(*) as count").Group("service_type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[ServiceType]int64, len(rows))
	for _, row := range rows {
		out[row.ServiceType] = row.Count
	}
	return out, nil
}
