package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) ListByUser(userID uint) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("user_id = ?", userID).Order("earned_at ASC").Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) HasBadgeTx(tx *gorm.DB, userID uint, code string) (bool, error) {
	var count int64
	err := tx.Model(&model.Badge{}).
		Where("user_id = ? AND code = ?", userID, code).
		Count(&count).Error
	return count > 0, err
}

func (r *BadgeRepository) CreateTx(tx *gorm.DB, badge *model.Badge) error {
	return tx.Create(badge).Error
}

func (r *BadgeRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Badge{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
