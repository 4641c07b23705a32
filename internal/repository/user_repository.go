package repository

import (
	"certlab_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// 邮箱在租户内唯一，查找必须带租户条件
func (r *UserRepository) FindByEmail(tenantID, email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("tenant_id = ? AND email = ?", tenantID, email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) CountByTenant(tenantID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

// 某时间点后活跃过的用户数，活跃以 last_seen 为准
func (r *UserRepository) CountActiveSince(tenantID string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("tenant_id = ? AND last_seen >= ?", tenantID, since).
		Count(&count).Error
	return count, err
}

// 管理端用户列表，支持按邮箱/姓名模糊过滤
func (r *UserRepository) ListByTenant(tenantID string, keyword string, page, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{}).Where("tenant_id = ?", tenantID)
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) SetDisabled(userID uint, disabled bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("disabled", disabled).
		Error
}
