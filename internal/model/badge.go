package model

import "time"

// Badge 用户已获得的徽章
// swagger:model Badge
type Badge struct {
	BaseModel
	TenantID string    `gorm:"size:36;index;not null" json:"tenantId"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_user_badge_code" json:"userId"`
	Code     string    `gorm:"size:50;not null;uniqueIndex:idx_user_badge_code" json:"code"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Icon     string    `gorm:"size:50" json:"icon"`
	EarnedAt time.Time `gorm:"not null" json:"earnedAt"`
}

func (Badge) TableName() string {
	return "badges"
}
