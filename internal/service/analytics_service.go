package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"certlab_backend/internal/config"
	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 每日积分图表的回看窗口
const dailyPointsWindowDays = 30

type AnalyticsService struct {
	QuizRepo     *repository.QuizRepository
	MasteryRepo  *repository.MasteryRepository
	ProgressRepo *repository.ProgressRepository
	StatsRepo    *repository.GameStatsRepository
	Redis        *redis.Client
	Cfg          *config.Config
}

func NewAnalyticsService(
	quizRepo *repository.QuizRepository,
	masteryRepo *repository.MasteryRepository,
	progressRepo *repository.ProgressRepository,
	statsRepo *repository.GameStatsRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *AnalyticsService {
	return &AnalyticsService{
		QuizRepo:     quizRepo,
		MasteryRepo:  masteryRepo,
		ProgressRepo: progressRepo,
		StatsRepo:    statsRepo,
		Redis:        rdb,
		Cfg:          cfg,
	}
}

// cacheKey 把完成测验数和最近完成时间编进键里。交卷后两者都会变化，
// 新请求自然落到新键上，旧键靠 TTL 过期，不需要显式失效
func (s *AnalyticsService) cacheKey(tenantID string, userID uint, count int64, latest *time.Time) string {
	var ts int64
	if latest != nil {
		ts = latest.Unix()
	}
	return fmt.Sprintf("analytics:%s:%d:%d:%d", tenantID, userID, count, ts)
}

// Report 返回完整分析报告，优先命中缓存。
// 缓存读写失败只记日志不影响请求
func (s *AnalyticsService) Report(tenantID string, userID uint) (*model.AnalyticsReport, error) {
	count, err := s.QuizRepo.CountCompleted(tenantID, userID)
	if err != nil {
		return nil, err
	}
	latest, err := s.QuizRepo.LatestCompletedAt(tenantID, userID)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	key := s.cacheKey(tenantID, userID, count, latest)

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var cached model.AnalyticsReport
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("analytics cache read failed", zap.Error(err))
		}
	}

	report, err := s.buildReport(tenantID, userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		payload, err := json.Marshal(report)
		if err == nil {
			ttl := time.Duration(s.Cfg.Analytics.CacheTTLMinutes) * time.Minute
			if err := s.Redis.Set(ctx, key, payload, ttl).Err(); err != nil {
				logger.Log.Warn("analytics cache write failed", zap.Error(err))
			}
		}
	}

	return report, nil
}

// buildReport 拉取该用户的全部分析输入并跑一遍所有引擎。
// 完成数不足 3 时引擎各自返回零值结构，报告照常生成
func (s *AnalyticsService) buildReport(tenantID string, userID uint) (*model.AnalyticsReport, error) {
	quizzes, err := s.QuizRepo.ListCompleted(tenantID, userID)
	if err != nil {
		return nil, err
	}
	mastery, err := s.MasteryRepo.ListByUser(tenantID, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.ListByUser(tenantID, userID)
	if err != nil {
		return nil, err
	}

	// 纯读路径不创建统计行，没有就按零连续天数处理
	currentStreak := 0
	stats, err := s.StatsRepo.FindByUser(tenantID, userID)
	if err == nil {
		currentStreak = stats.CurrentStreak
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	loc := s.Cfg.AnalyticsLocation()
	now := time.Now()

	report := &model.AnalyticsReport{
		GeneratedAt:       now.Unix(),
		QuizCount:         len(quizzes),
		HasSufficientData: len(quizzes) >= MinQuizzesForAnalytics,
		LearningCurve:     BuildLearningCurve(quizzes, loc),
		Readiness:         PredictExamReadiness(quizzes, mastery),
		Forecasts:         ForecastPerformance(quizzes, loc),
		Efficiency:        ComputeStudyEfficiency(quizzes, loc),
		SkillGaps:         ComputeSkillGaps(mastery, progress),
		Burnout:           DetectBurnoutRisk(quizzes, loc),
		PeakTimes:         PeakPerformanceTimes(quizzes, loc),
		Retention:         BuildRetentionCurve(quizzes, s.Cfg.Analytics.RetentionDays, loc),
		DailyPoints:       BuildDailyPoints(quizzes, dailyPointsWindowDays, now, loc),
	}
	report.Insights = GenerateInsights(report, currentStreak)

	logger.Log.Debug("analytics report built",
		zap.Uint("userId", userID),
		zap.Int("quizCount", report.QuizCount),
		zap.Bool("sufficient", report.HasSufficientData))

	return report, nil
}
