package model

import "time"

// StudySession 学习计时器的一次学习时段记录
// swagger:model StudySession
type StudySession struct {
	BaseModel
	TenantID   string     `gorm:"size:36;index;not null" json:"tenantId"`
	UserID     uint       `gorm:"index;not null" json:"userId"`
	CategoryID string     `gorm:"size:36" json:"categoryId"` // 可选：本时段针对的考纲域
	StartedAt  time.Time  `gorm:"not null" json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt"`
	Duration   int        `gorm:"default:0" json:"duration"` // 分钟
	Note       string     `gorm:"size:255" json:"note"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
