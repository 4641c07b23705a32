package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) ListByUser(tenantID string, userID uint) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Preload("Category").
		Find(&progress).Error
	return progress, err
}

// IncrementTx 在提交事务内累加答题计数，记录不存在则先创建
func (r *ProgressRepository) IncrementTx(tx *gorm.DB, tenantID string, userID uint, categoryID string, answered, correct int) error {
	var existing model.UserProgress
	err := tx.Where("tenant_id = ? AND user_id = ? AND category_id = ?", tenantID, userID, categoryID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&model.UserProgress{
			TenantID:          tenantID,
			UserID:            userID,
			CategoryID:        categoryID,
			QuestionsAnswered: answered,
			CorrectAnswers:    correct,
		}).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&model.UserProgress{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"questions_answered": gorm.Expr("questions_answered + ?", answered),
			"correct_answers":    gorm.Expr("correct_answers + ?", correct),
		}).Error
}
