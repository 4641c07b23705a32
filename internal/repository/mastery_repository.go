package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type MasteryRepository struct {
	DB *gorm.DB
}

func NewMasteryRepository(db *gorm.DB) *MasteryRepository {
	return &MasteryRepository{DB: db}
}

func (r *MasteryRepository) ListByUser(tenantID string, userID uint) ([]model.MasteryScore, error) {
	var scores []model.MasteryScore
	err := r.DB.Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Preload("Category").
		Order("score ASC").
		Find(&scores).Error
	return scores, err
}

func (r *MasteryRepository) FindByCategory(tenantID string, userID uint, categoryID string) (*model.MasteryScore, error) {
	var score model.MasteryScore
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND category_id = ?", tenantID, userID, categoryID).
		First(&score).Error
	return &score, err
}

// UpsertTx 在测验提交事务内更新掌握度，不存在则创建
func (r *MasteryRepository) UpsertTx(tx *gorm.DB, score *model.MasteryScore) error {
	var existing model.MasteryScore
	err := tx.Where("tenant_id = ? AND user_id = ? AND category_id = ?",
		score.TenantID, score.UserID, score.CategoryID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(score).Error
	}
	if err != nil {
		return err
	}

	existing.Score = score.Score
	existing.QuizCount = score.QuizCount
	existing.LastQuizAt = score.LastQuizAt
	return tx.Save(&existing).Error
}
