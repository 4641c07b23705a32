package repository

import (
	"certlab_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

func (r *StudySessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

func (r *StudySessionRepository) FindByID(tenantID string, userID uint, id uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND id = ?", tenantID, userID, id).
		First(&session).Error
	return &session, err
}

// 进行中的会话（未结束），同一用户最多一个
func (r *StudySessionRepository) FindActive(tenantID string, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND ended_at IS NULL", tenantID, userID).
		Order("started_at DESC").
		First(&session).Error
	return &session, err
}

func (r *StudySessionRepository) Update(session *model.StudySession) error {
	return r.DB.Save(session).Error
}

func (r *StudySessionRepository) ListByUser(tenantID string, userID uint, page, pageSize int) ([]model.StudySession, int64, error) {
	var sessions []model.StudySession
	var total int64

	query := r.DB.Model(&model.StudySession{}).
		Where("tenant_id = ? AND user_id = ? AND ended_at IS NOT NULL", tenantID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Category").
		Find(&sessions).Error
	return sessions, total, err
}

func (r *StudySessionRepository) TotalMinutes(tenantID string, userID uint, since time.Time) (int64, error) {
	var total int64
	err := r.DB.Model(&model.StudySession{}).
		Where("tenant_id = ? AND user_id = ? AND ended_at IS NOT NULL AND started_at >= ?",
			tenantID, userID, since).
		Select("COALESCE(SUM(duration),0)").
		Scan(&total).Error
	return total, err
}

// 租户累计学习分钟数，管理端看板用
func (r *StudySessionRepository) TenantMinutes(tenantID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.StudySession{}).
		Where("tenant_id = ? AND ended_at IS NOT NULL", tenantID).
		Select("COALESCE(SUM(duration),0)").
		Scan(&total).Error
	return total, err
}
