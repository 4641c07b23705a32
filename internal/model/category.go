package model

// Category 认证考试的知识领域（考纲域），题目与测验按领域组织
// swagger:model Category
type Category struct {
	UUIDBase
	TenantID    string `gorm:"size:36;index;not null" json:"tenantId"`
	Code        string `gorm:"size:50;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	ExamWeight  int    `gorm:"default:0" json:"examWeight"` // 该领域在正式考试中的占比（百分比）
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Category) TableName() string {
	return "categories"
}
