package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(tenantID, id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("tenant_id = ? AND id = ?", tenantID, id).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) FindByCode(tenantID, code string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("tenant_id = ? AND code = ?", tenantID, code).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) ListByTenant(tenantID string, enabledOnly bool) ([]model.Category, error) {
	var categories []model.Category
	query := r.DB.Where("tenant_id = ?", tenantID)
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.Order("exam_weight DESC, code ASC").Find(&categories).Error
	return categories, err
}

// 按 ID 集合查找，用于校验测验请求中的领域归属
func (r *CategoryRepository) FindByIDs(tenantID string, ids []string) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Where("tenant_id = ? AND id IN ?", tenantID, ids).Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) Delete(tenantID, id string) error {
	return r.DB.Where("tenant_id = ?", tenantID).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *CategoryRepository) CountQuestions(tenantID, categoryID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("tenant_id = ? AND category_id = ? AND active = ?", tenantID, categoryID, true).
		Count(&count).Error
	return count, err
}
