package model

// Question 题库中的单选题
// swagger:model Question
type Question struct {
	UUIDBase
	TenantID    string   `gorm:"size:36;index;not null" json:"tenantId"`
	CategoryID  string   `gorm:"size:36;index;not null" json:"categoryId"`
	Text        string   `gorm:"type:text;not null" json:"text"`
	Options     []string `gorm:"serializer:json;type:json" json:"options"`
	CorrectIdx  int      `gorm:"not null" json:"-"` // 正确选项下标，接口返回时对学员隐藏
	Explanation string   `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty  int      `gorm:"default:3" json:"difficulty"` // 1-5
	Active      bool     `gorm:"default:true" json:"active"`
}

func (Question) TableName() string {
	return "questions"
}
