package repository

import (
	"certlab_backend/internal/model"

	"gorm.io/gorm"
)

type GameStatsRepository struct {
	DB *gorm.DB
}

func NewGameStatsRepository(db *gorm.DB) *GameStatsRepository {
	return &GameStatsRepository{DB: db}
}

func (r *GameStatsRepository) FindByUser(tenantID string, userID uint) (*model.UserGameStats, error) {
	var stats model.UserGameStats
	err := r.DB.Where("tenant_id = ? AND user_id = ?", tenantID, userID).First(&stats).Error
	return &stats, err
}

func (r *GameStatsRepository) FindOrCreate(tenantID string, userID uint) (*model.UserGameStats, error) {
	var stats model.UserGameStats
	err := r.DB.Where("tenant_id = ? AND user_id = ?", tenantID, userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = model.UserGameStats{TenantID: tenantID, UserID: userID, Level: 1}
		if err := r.DB.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindOrCreateTx 提交事务内的版本
func (r *GameStatsRepository) FindOrCreateTx(tx *gorm.DB, tenantID string, userID uint) (*model.UserGameStats, error) {
	var stats model.UserGameStats
	err := tx.Where("tenant_id = ? AND user_id = ?", tenantID, userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = model.UserGameStats{TenantID: tenantID, UserID: userID, Level: 1}
		if err := tx.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *GameStatsRepository) SaveTx(tx *gorm.DB, stats *model.UserGameStats) error {
	return tx.Save(stats).Error
}

// Leaderboard 租户内按总积分排序的前 N 名
func (r *GameStatsRepository) Leaderboard(tenantID string, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Table("user_game_stats").
		Select("user_game_stats.user_id, users.name, users.avatar, user_game_stats.total_points, user_game_stats.badge_count").
		Joins("JOIN users ON users.id = user_game_stats.user_id").
		Where("user_game_stats.tenant_id = ? AND users.disabled = ?", tenantID, false).
		Order("user_game_stats.total_points DESC, user_game_stats.user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
