package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 50
	leaderboardCacheTTL    = time.Minute
)

type GamificationService struct {
	StatsRepo *repository.GameStatsRepository
	BadgeRepo *repository.BadgeRepository
	Redis     *redis.Client
}

func NewGamificationService(
	statsRepo *repository.GameStatsRepository,
	badgeRepo *repository.BadgeRepository,
	rdb *redis.Client,
) *GamificationService {
	return &GamificationService{
		StatsRepo: statsRepo,
		BadgeRepo: badgeRepo,
		Redis:     rdb,
	}
}

// GameStatsView 游戏化状态响应。Level 不取存储值，
// 一律由 TotalPoints 现算
type GameStatsView struct {
	TotalPoints   int        `json:"totalPoints"`
	Level         LevelInfo  `json:"level"`
	CurrentStreak int        `json:"currentStreak"`
	LongestStreak int        `json:"longestStreak"`
	LastStudyDate *time.Time `json:"lastStudyDate"`
	QuizzesTaken  int        `json:"quizzesTaken"`
	PerfectScores int        `json:"perfectScores"`
	BadgeCount    int        `json:"badgeCount"`
}

func (s *GamificationService) GetStats(tenantID string, userID uint) (*GameStatsView, error) {
	stats, err := s.StatsRepo.FindOrCreate(tenantID, userID)
	if err != nil {
		return nil, err
	}

	level := SnapshotLevel(stats.TotalPoints)
	if stats.Level != level.Level {
		logger.Log.Debug("stored level drifted from points",
			zap.Uint("userId", userID),
			zap.Int("stored", stats.Level),
			zap.Int("computed", level.Level))
	}

	// 徽章数同等级一样按源数据现算，不信存储的冗余计数
	badgeCount, err := s.BadgeRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &GameStatsView{
		TotalPoints:   stats.TotalPoints,
		Level:         level,
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestStreak,
		LastStudyDate: stats.LastStudyDate,
		QuizzesTaken:  stats.QuizzesTaken,
		PerfectScores: stats.PerfectScores,
		BadgeCount:    int(badgeCount),
	}, nil
}

// BadgeStatus 徽章墙条目：目录里的全部徽章，标出已获得的
type BadgeStatus struct {
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon"`
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}

func (s *GamificationService) ListBadges(userID uint) ([]BadgeStatus, error) {
	earned, err := s.BadgeRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*model.Badge, len(earned))
	for i := range earned {
		byCode[earned[i].Code] = &earned[i]
	}

	catalog := BadgeCatalog()
	statuses := make([]BadgeStatus, 0, len(catalog))
	for _, def := range catalog {
		status := BadgeStatus{
			Code: def.Code,
			Name: def.Name,
			Icon: def.Icon,
		}
		if b, ok := byCode[def.Code]; ok {
			status.Earned = true
			at := b.EarnedAt
			status.EarnedAt = &at
			delete(byCode, def.Code)
		}
		statuses = append(statuses, status)
	}

	// 目录里已下架但用户拿到过的徽章仍然展示
	for _, b := range earned {
		if _, ok := byCode[b.Code]; !ok {
			continue
		}
		at := b.EarnedAt
		statuses = append(statuses, BadgeStatus{
			Code:     b.Code,
			Name:     b.Name,
			Icon:     b.Icon,
			Earned:   true,
			EarnedAt: &at,
		})
	}

	return statuses, nil
}

// Leaderboard 租户内积分排行榜，短 TTL 缓存削峰。
// 排名和等级是读取侧派生的，不存库
func (s *GamificationService) Leaderboard(tenantID string, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	ctx := context.Background()
	key := fmt.Sprintf("leaderboard:%s:%d", tenantID, limit)

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var cached []model.LeaderboardEntry
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	entries, err := s.StatsRepo.Leaderboard(tenantID, limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Level = CalculateLevelFromPoints(entries[i].TotalPoints)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, key, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}
