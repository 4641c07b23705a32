package model

import "time"

// MasteryScore 用户在某一考纲域的滚动掌握度估计（0-100）
// 由测验交卷时更新，分析引擎只读
// swagger:model MasteryScore
type MasteryScore struct {
	BaseModel
	TenantID   string    `gorm:"size:36;index;not null" json:"tenantId"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_category_mastery" json:"userId"`
	CategoryID string    `gorm:"size:36;not null;uniqueIndex:idx_user_category_mastery" json:"categoryId"`
	Score      float64   `gorm:"default:0" json:"score"` // 0-100
	QuizCount  int       `gorm:"default:0" json:"quizCount"`
	LastQuizAt time.Time `json:"lastQuizAt"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (MasteryScore) TableName() string {
	return "mastery_scores"
}
