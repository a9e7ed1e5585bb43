package vehicle

import (
	"time"
)

// Type 车辆类型枚举（持久化为字符串）。
type Type string

const (
	TypeCar        Type = "car"
	TypeTruck      Type = "truck"
	TypeVan        Type = "van"
	TypeBus        Type = "bus"
	TypeMotorcycle Type = "motorcycle"
	TypeOther      Type = "other"
)

// Status 车辆状态枚举。
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

// Vehicle 是 vehicles 表的 GORM 模型。
// VehicleNumber 入库前统一大写，全局唯一。
// AssignedTo 是指向 User 的弱引用：只存 id，被引用用户删除后由读取侧降级为 null。
type Vehicle struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	VehicleNumber string    `gorm:"uniqueIndex;size:32;not null" json:"vehicleNumber"`
	Make          string    `gorm:"size:64;not null" json:"make"`
	Model         string    `gorm:"size:64;not null" json:"model"`
	Year          int       `gorm:"not null" json:"year"`
	Type          Type      `gorm:"type:varchar(16);not null" json:"type"`
	AssignedTo    string    `gorm:"index;size:36" json:"assignedTo,omitempty"`
	Mileage       int       `gorm:"not null;default:0" json:"mileage"`
	Status        Status    `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Summary 被 Service 引用时的精简投影。
type Summary struct {
	ID            string `json:"id"`
	VehicleNumber string `json:"vehicleNumber"`
	Make          string `json:"make"`
	Model         string `json:"model"`
}

func (v *Vehicle) Summarize() *Summary {
	if v == nil {
		return nil
	}
	return &Summary{
		ID:            v.ID,
		VehicleNumber: v.VehicleNumber,
		Make:          v.Make,
		Model:         v.Model,
	}
}
