package model

import "time"

// UserGameStats 用户的游戏化累计状态。TotalPoints 是等级的唯一权威来源；
// Level 字段仅作展示缓存，读取侧必须由 TotalPoints 重新推导，不得直接信任
// swagger:model UserGameStats
type UserGameStats struct {
	BaseModel
	TenantID      string     `gorm:"size:36;index;not null" json:"tenantId"`
	UserID        uint       `gorm:"uniqueIndex;not null" json:"userId"`
	TotalPoints   int        `gorm:"default:0" json:"totalPoints"`
	Level         int        `gorm:"default:1" json:"level"`
	CurrentStreak int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak int        `gorm:"default:0" json:"longestStreak"`
	LastStudyDate *time.Time `json:"lastStudyDate"`
	QuizzesTaken  int        `gorm:"default:0" json:"quizzesTaken"`
	PerfectScores int        `gorm:"default:0" json:"perfectScores"`
	BadgeCount    int        `gorm:"default:0" json:"badgeCount"`
}

func (UserGameStats) TableName() string {
	return "user_game_stats"
}

// LeaderboardEntry 排行榜条目，Level 由 TotalPoints 现算
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint   `json:"userId"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	TotalPoints int    `json:"totalPoints"`
	Level       int    `json:"level"`
	BadgeCount  int    `json:"badgeCount"`
}
