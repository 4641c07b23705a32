package model

import (
	"time"
)

type QuizMode string

const (
	ModeStudy    QuizMode = "study"    // 练习模式：逐题反馈，带解析
	ModeQuiz     QuizMode = "quiz"     // 测验模式：交卷后统一评分
	ModeAdaptive QuizMode = "adaptive" // 自适应模式：按掌握度动态调整难度
)

// Quiz 一次答题记录。进行中可变，交卷后不可变
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	TenantID       string         `gorm:"size:36;index;not null" json:"tenantId"`
	UserID         uint           `gorm:"index;not null" json:"userId"`
	Mode           QuizMode       `gorm:"type:enum('study','quiz','adaptive');default:'quiz'" json:"mode"`
	TotalQuestions int            `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int            `gorm:"default:0" json:"correctAnswers"`
	Score          int            `gorm:"default:0" json:"score"` // 0-100，交卷时按 round(correct/total*100) 计算
	IsPassing      bool           `gorm:"default:false" json:"isPassing"`
	StartedAt      time.Time      `gorm:"not null" json:"startedAt"`
	CompletedAt    *time.Time     `gorm:"index" json:"completedAt"` // 交卷前为 null，置值后不再变更
	Categories     []Category     `gorm:"many2many:quiz_categories" json:"categories,omitempty"`
	Questions      []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// IsCompleted 测验是否已交卷
func (q *Quiz) IsCompleted() bool {
	return q.CompletedAt != nil
}

// QuizQuestion 测验中的一道题及作答情况
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID      string     `gorm:"size:36;index;not null" json:"quizId"`
	QuestionID  string     `gorm:"size:36;not null" json:"questionId"`
	Position    int        `gorm:"not null" json:"position"`
	SelectedIdx *int       `json:"selectedIdx"` // 未作答时为 null
	Correct     *bool      `json:"correct"`
	AnsweredAt  *time.Time `json:"answeredAt"`
	Question    *Question  `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
