package repository

import (
	"certlab_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudyTipRepository struct {
	DB *gorm.DB
}

func NewStudyTipRepository(db *gorm.DB) *StudyTipRepository {
	return &StudyTipRepository{DB: db}
}

// 获取所有小贴士
func (r *StudyTipRepository) GetAll() ([]*model.StudyTip, error) {
	var tips []*model.StudyTip
	err := r.DB.Find(&tips).Error
	return tips, err
}

// 获取启用的小贴士
func (r *StudyTipRepository) GetEnabled() ([]*model.StudyTip, error) {
	var tips []*model.StudyTip
	err := r.DB.Where("is_enabled = ?", true).Find(&tips).Error
	return tips, err
}

// 获取当前展示的小贴士
func (r *StudyTipRepository) GetCurrent() (*model.StudyTip, error) {
	var tip model.StudyTip
	err := r.DB.Where("is_currently_used = ?", true).First(&tip).Error
	return &tip, err
}

func (r *StudyTipRepository) Create(tip *model.StudyTip) error {
	return r.DB.Create(tip).Error
}

func (r *StudyTipRepository) Update(tip *model.StudyTip) error {
	return r.DB.Save(tip).Error
}

func (r *StudyTipRepository) Delete(id uint) error {
	return r.DB.Delete(&model.StudyTip{}, id).Error
}

// 设置当前展示的小贴士
func (r *StudyTipRepository) SetCurrent(id uint) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Model(&model.StudyTip{}).Where("is_currently_used = ?", true).Update("is_currently_used", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&model.StudyTip{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_currently_used": true,
		"last_used_at":      time.Now(),
	}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
