package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	TenantID   string     `gorm:"size:36;not null;uniqueIndex:idx_tenant_email" json:"tenantId"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Email      string     `gorm:"size:100;not null;uniqueIndex:idx_tenant_email" json:"email"`
	Password   string     `gorm:"size:100;not null" json:"-"`
	Role       UserRole   `gorm:"type:enum('member','admin');default:'member'" json:"role"`
	TargetExam string     `gorm:"size:100" json:"targetExam"` // 备考的认证考试名称
	ExamDate   *time.Time `json:"examDate"`                   // 计划参加考试的日期
	Avatar     string     `gorm:"size:255" json:"avatar"`
	Disabled   bool       `gorm:"default:false" json:"disabled"`
	LastLogin  time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen   time.Time  `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
