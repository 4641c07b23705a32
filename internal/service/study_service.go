package service

import (
	"time"

	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/util"
	"certlab_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 单次会话时长封顶，防止忘记停表的计时灌爆学习总时长
const maxSessionMinutes = 8 * 60

// StudyService 学习计时器
type StudyService struct {
	SessionRepo  *repository.StudySessionRepository
	CategoryRepo *repository.CategoryRepository
	Location     *time.Location
}

func NewStudyService(
	sessionRepo *repository.StudySessionRepository,
	categoryRepo *repository.CategoryRepository,
	loc *time.Location,
) *StudyService {
	return &StudyService{
		SessionRepo:  sessionRepo,
		CategoryRepo: categoryRepo,
		Location:     loc,
	}
}

type StartSessionRequest struct {
	CategoryID string `json:"categoryId"`
	Note       string `json:"note"`
}

// StartSession 开始计时。同一用户只允许一个进行中的会话，
// 残留的旧会话先按当前时刻结算再开新表
func (s *StudyService) StartSession(tenantID string, userID uint, req *StartSessionRequest) (*model.StudySession, error) {
	if req.CategoryID != "" {
		if _, err := s.CategoryRepo.FindByID(tenantID, req.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, util.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	now := time.Now()
	active, err := s.SessionRepo.FindActive(tenantID, userID)
	if err == nil {
		finalizeSession(active, now)
		if err := s.SessionRepo.Update(active); err != nil {
			return nil, err
		}
		logger.Log.Info("stale study session auto closed",
			zap.Uint("sessionId", active.ID),
			zap.Uint("userId", userID),
			zap.Int("minutes", active.Duration))
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	session := &model.StudySession{
		TenantID:   tenantID,
		UserID:     userID,
		CategoryID: req.CategoryID,
		StartedAt:  now,
		Note:       req.Note,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession 结束计时并结算时长
func (s *StudyService) EndSession(tenantID string, userID uint, sessionID uint) (*model.StudySession, error) {
	session, err := s.SessionRepo.FindByID(tenantID, userID, sessionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, util.ErrSessionAlreadyEnded
	}

	finalizeSession(session, time.Now())
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}

	logger.Log.Info("study session ended",
		zap.Uint("sessionId", session.ID),
		zap.Uint("userId", userID),
		zap.Int("minutes", session.Duration))
	return session, nil
}

// finalizeSession 结算时长：不足一分钟按一分钟计，超长封顶
func finalizeSession(session *model.StudySession, endedAt time.Time) {
	minutes := int(endedAt.Sub(session.StartedAt).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	if minutes > maxSessionMinutes {
		minutes = maxSessionMinutes
	}
	session.EndedAt = &endedAt
	session.Duration = minutes
}

// GetActive 当前进行中的会话，没有则返回 nil
func (s *StudyService) GetActive(tenantID string, userID uint) (*model.StudySession, error) {
	session, err := s.SessionRepo.FindActive(tenantID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudyService) ListSessions(tenantID string, userID uint, page, pageSize int) ([]model.StudySession, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.SessionRepo.ListByUser(tenantID, userID, page, pageSize)
}

// StudySummary 计时器累计统计
type StudySummary struct {
	TodayMinutes int64 `json:"todayMinutes"`
	WeekMinutes  int64 `json:"weekMinutes"` // 含今天的近7天
	TotalMinutes int64 `json:"totalMinutes"`
}

func (s *StudyService) Summary(tenantID string, userID uint) (*StudySummary, error) {
	dayStart := truncateToDay(time.Now(), s.Location)
	weekStart := dayStart.AddDate(0, 0, -6)

	today, err := s.SessionRepo.TotalMinutes(tenantID, userID, dayStart)
	if err != nil {
		return nil, err
	}
	week, err := s.SessionRepo.TotalMinutes(tenantID, userID, weekStart)
	if err != nil {
		return nil, err
	}
	total, err := s.SessionRepo.TotalMinutes(tenantID, userID, time.Time{})
	if err != nil {
		return nil, err
	}

	return &StudySummary{
		TodayMinutes: today,
		WeekMinutes:  week,
		TotalMinutes: total,
	}, nil
}
