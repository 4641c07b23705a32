package model

// UserProgress 用户在某一考纲域累计的答题量与正确量
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	TenantID          string    `gorm:"size:36;index;not null" json:"tenantId"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_user_category_progress" json:"userId"`
	CategoryID        string    `gorm:"size:36;not null;uniqueIndex:idx_user_category_progress" json:"categoryId"`
	QuestionsAnswered int       `gorm:"default:0" json:"questionsAnswered"`
	CorrectAnswers    int       `gorm:"default:0" json:"correctAnswers"`
	Category          *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
