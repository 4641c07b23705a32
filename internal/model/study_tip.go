package model

import "time"

// StudyTip 轮换展示的备考小贴士
// swagger:model StudyTip
type StudyTip struct {
	BaseModel
	Content         string    `gorm:"type:text;not null" json:"content"`
	IsEnabled       bool      `gorm:"default:true" json:"isEnabled"`
	IsCurrentlyUsed bool      `gorm:"default:false" json:"isCurrentlyUsed"`
	LastUsedAt      time.Time `json:"lastUsedAt"`
}

func (StudyTip) TableName() string {
	return "study_tips"
}
