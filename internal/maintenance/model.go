package maintenance

import (
	"time"

	"gorm.io/gorm"
)

// ServiceType 保养/维修类型枚举。
type ServiceType string

const (
	TypeOilChange    ServiceType = "oil-change"
	TypeTireRotation ServiceType = "tire-rotation"
	TypeBrake        ServiceType = "brake-service"
	TypeEngineRepair ServiceType = "engine-repair"
	TypeInspection   ServiceType = "inspection"
	TypeBattery      ServiceType = "battery-replacement"
	TypeTransmission ServiceType = "transmission-service"
	TypeOther        ServiceType = "other"
)

// Status 工单状态枚举。
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Service 是 services 表的 GORM 模型，一条车辆保养/维修工单。
// VehicleID 创建时必须指向存在的车辆；AssignedTechnician 和 CreatedBy
// 是指向 User 的弱引用，被引用用户删除后由读取侧降级为 null。
// CompletedDate 只在首次进入 completed 时由 BeforeSave 钩子写入一次。
type Service struct {
	ID                 string      `gorm:"primaryKey;size:36" json:"id"`
	VehicleID          string      `gorm:"index;size:36;not null" json:"vehicle"`
	ServiceType        ServiceType `gorm:"type:varchar(32);not null" json:"serviceType"`
	Description        string      `gorm:"size:512" json:"description,omitempty"`
	ScheduledDate      time.Time   `gorm:"not null" json:"scheduledDate"`
	CompletedDate      *time.Time  `json:"completedDate,omitempty"`
	Status             Status      `gorm:"type:varchar(16);not null;index" json:"status"`
	AssignedTechnician string      `gorm:"index;size:36" json:"assignedTechnician,omitempty"`
	Cost               float64     `gorm:"not null;default:0" json:"cost"`
	Notes              string      `gorm:"size:512" json:"notes,omitempty"`
	CreatedBy          string      `gorm:"size:36;not null" json:"createdBy"`
	CreatedAt          time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Service) TableName() string {
	return "services"
}

// BeforeSave 在每条写路径上盖完成时间戳，全量更新和仅状态更新共用这一处。
func (s *Service) BeforeSave(_ *gorm.DB) error {
	s.stampCompletion(time.Now())
	return nil
}

// stampCompletion 首次进入 completed 时写入 CompletedDate；已写入的不再改动，
// 离开 completed 也不清空。
func (s *Service) stampCompletion(now time.Time) {
	if s.Status == StatusCompleted && s.CompletedDate == nil {
		t := now
		s.CompletedDate = &t
	}
}
