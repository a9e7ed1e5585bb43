package user

import (
	"time"

	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
)

// User 是 users 表的 GORM 模型。
// 账号只由 admin 创建（或启动种子），不存在自助注册。
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Name         string     `gorm:"size:64;not null" json:"name" validate:"required"`
	Email        string     `gorm:"uniqueIndex;size:128;not null" json:"email" validate:"required,email"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	Role         authz.Role `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=admin technician user"`
	Phone        string     `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Summary 被其他实体引用时的精简投影（弱引用解析结果）。
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Summarize 生成精简投影；phone 仅在 withPhone 时带出。
func (u *User) Summarize(withPhone bool) *Summary {
	if u == nil {
		return nil
	}
	s := &Summary{ID: u.ID, Name: u.Name, Email: u.Email}
	if withPhone {
		s.Phone = u.Phone
	}
	return s
}
