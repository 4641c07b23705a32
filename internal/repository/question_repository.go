package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(tenantID, id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where("tenant_id = ? AND id = ?", tenantID, id).First(&question).Error
	return &question, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

// 题目可能已被历史测验引用，删除只做停用
func (r *QuestionRepository) Deactivate(tenantID, id string) error {
	return r.DB.Model(&model.Question{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("active", false).
		Error
}

// 题目列表。管理端看全部，学员端只看启用的
func (r *QuestionRepository) List(tenantID, categoryID string, difficulty int, activeOnly bool, page, pageSize int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{}).Where("tenant_id = ?", tenantID)
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if difficulty > 0 {
		query = query.Where("difficulty = ?", difficulty)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&questions).Error
	return questions, total, err
}

// 出题候选池：启用题目，按领域过滤，难度窗口 [minDifficulty, maxDifficulty]
// 随机抽取在服务层完成
func (r *QuestionRepository) FindCandidates(tenantID string, categoryIDs []string, minDifficulty, maxDifficulty int) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Where("tenant_id = ? AND active = ?", tenantID, true)
	if len(categoryIDs) > 0 {
		query = query.Where("category_id IN ?", categoryIDs)
	}
	if minDifficulty > 0 {
		query = query.Where("difficulty >= ?", minDifficulty)
	}
	if maxDifficulty > 0 {
		query = query.Where("difficulty <= ?", maxDifficulty)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountActive(tenantID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	return count, err
}
