package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type TenantRepository struct {
	DB *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) Create(tenant *model.Tenant) error {
	return r.DB.Create(tenant).Error
}

func (r *TenantRepository) FindByID(id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.Where("id = ?", id).First(&tenant).Error
	return &tenant, err
}

func (r *TenantRepository) FindByName(name string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.Where("name = ?", name).First(&tenant).Error
	return &tenant, err
}

// 默认租户：最早创建的未停用租户，注册时未指定租户则落入此处
func (r *TenantRepository) FindDefault() (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.Where("disabled = ?", false).Order("created_at ASC").First(&tenant).Error
	return &tenant, err
}
