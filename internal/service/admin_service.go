package service

import (
	"time"

	"certlab_backend/internal/repository"
)

// AdminService 管理端的租户级聚合视图
type AdminService struct {
	UserRepo     *repository.UserRepository
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	SessionRepo  *repository.StudySessionRepository
}

func NewAdminService(
	userRepo *repository.UserRepository,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	sessionRepo *repository.StudySessionRepository,
) *AdminService {
	return &AdminService{
		UserRepo:     userRepo,
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		SessionRepo:  sessionRepo,
	}
}

// TenantOverview 租户运营概览
type TenantOverview struct {
	UserCount         int64   `json:"userCount"`
	ActiveUsers24h    int64   `json:"activeUsers24h"`
	QuestionCount     int64   `json:"questionCount"` // 启用题目数
	TotalQuizzes      int64   `json:"totalQuizzes"`
	CompletedQuizzes  int64   `json:"completedQuizzes"`
	AverageScore      float64 `json:"averageScore"` // 已完成测验的平均分
	PassRate          float64 `json:"passRate"`     // 百分比
	TotalStudyMinutes int64   `json:"totalStudyMinutes"`
}

func (s *AdminService) Overview(tenantID string) (*TenantOverview, error) {
	users, err := s.UserRepo.CountByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	active, err := s.UserRepo.CountActiveSince(tenantID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	questions, err := s.QuestionRepo.CountActive(tenantID)
	if err != nil {
		return nil, err
	}
	quizStats, err := s.QuizRepo.TenantStats(tenantID)
	if err != nil {
		return nil, err
	}
	minutes, err := s.SessionRepo.TenantMinutes(tenantID)
	if err != nil {
		return nil, err
	}

	overview := &TenantOverview{
		UserCount:         users,
		ActiveUsers24h:    active,
		QuestionCount:     questions,
		TotalQuizzes:      quizStats.Total,
		CompletedQuizzes:  quizStats.Completed,
		AverageScore:      quizStats.AverageScore,
		TotalStudyMinutes: minutes,
	}
	if quizStats.Completed > 0 {
		overview.PassRate = float64(quizStats.Passed) / float64(quizStats.Completed) * 100
	}
	return overview, nil
}
