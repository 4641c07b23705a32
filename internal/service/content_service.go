package service

import (
	"errors"
	"time"

	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/util"
	"certlab_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContentService 考纲域与题库的维护，出题器的数据来源
type ContentService struct {
	CategoryRepo *repository.CategoryRepository
	QuestionRepo *repository.QuestionRepository
}

func NewContentService(
	categoryRepo *repository.CategoryRepository,
	questionRepo *repository.QuestionRepository,
) *ContentService {
	return &ContentService{
		CategoryRepo: categoryRepo,
		QuestionRepo: questionRepo,
	}
}

// CategoryView 领域及其题量
type CategoryView struct {
	model.Category
	QuestionCount int64 `json:"questionCount"`
}

func (s *ContentService) ListCategories(tenantID string, enabledOnly bool) ([]CategoryView, error) {
	categories, err := s.CategoryRepo.ListByTenant(tenantID, enabledOnly)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		count, err := s.CategoryRepo.CountQuestions(tenantID, c.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, CategoryView{Category: c, QuestionCount: count})
	}
	return views, nil
}

func (s *ContentService) GetCategory(tenantID, id string) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(tenantID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

type CategoryRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ExamWeight  int    `json:"examWeight" binding:"gte=0,lte=100"`
	Enabled     *bool  `json:"enabled"`
}

func (s *ContentService) CreateCategory(tenantID string, req *CategoryRequest) (*model.Category, error) {
	if _, err := s.CategoryRepo.FindByCode(tenantID, req.Code); err == nil {
		return nil, errors.New("category code already in use")
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	category := &model.Category{
		TenantID:    tenantID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		ExamWeight:  req.ExamWeight,
		Enabled:     true,
	}
	if req.Enabled != nil {
		category.Enabled = *req.Enabled
	}

	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Log.Info("category created",
		zap.String("categoryId", category.ID),
		zap.String("code", category.Code))
	return category, nil
}

func (s *ContentService) UpdateCategory(tenantID, id string, req *CategoryRequest) (*model.Category, error) {
	category, err := s.GetCategory(tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != category.Code {
		if _, err := s.CategoryRepo.FindByCode(tenantID, req.Code); err == nil {
			return nil, errors.New("category code already in use")
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	category.Code = req.Code
	category.Name = req.Name
	category.Description = req.Description
	category.ExamWeight = req.ExamWeight
	if req.Enabled != nil {
		category.Enabled = *req.Enabled
	}
	category.UpdatedAt = time.Now()

	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 只允许删除空领域，有题目的先清空题库
func (s *ContentService) DeleteCategory(tenantID, id string) error {
	if _, err := s.GetCategory(tenantID, id); err != nil {
		return err
	}

	count, err := s.CategoryRepo.CountQuestions(tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category still has questions")
	}

	return s.CategoryRepo.Delete(tenantID, id)
}

// QuestionView 学员端的题目视图，不含答案和解析
type QuestionView struct {
	ID         string   `json:"id"`
	CategoryID string   `json:"categoryId"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty int      `json:"difficulty"`
}

// ListQuestionsForMember 学员浏览题库：仅启用题目，答案与解析一律不下发
func (s *ContentService) ListQuestionsForMember(tenantID, categoryID string, page, pageSize int) ([]QuestionView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	questions, total, err := s.QuestionRepo.List(tenantID, categoryID, 0, true, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			ID:         q.ID,
			CategoryID: q.CategoryID,
			Text:       q.Text,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		})
	}
	return views, total, nil
}

// AdminQuestionView 管理端题目视图，带答案下标
type AdminQuestionView struct {
	model.Question
	CorrectIdx int `json:"correctIdx"`
}

func (s *ContentService) ListQuestions(tenantID, categoryID string, difficulty, page, pageSize int) ([]AdminQuestionView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	questions, total, err := s.QuestionRepo.List(tenantID, categoryID, difficulty, false, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]AdminQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, AdminQuestionView{Question: q, CorrectIdx: q.CorrectIdx})
	}
	return views, total, nil
}

type QuestionRequest struct {
	CategoryID  string   `json:"categoryId" binding:"required"`
	Text        string   `json:"text" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2,max=6"`
	CorrectIdx  *int     `json:"correctIdx" binding:"required"`
	Explanation string   `json:"explanation"`
	Difficulty  int      `json:"difficulty" binding:"omitempty,gte=1,lte=5"`
	Active      *bool    `json:"active"`
}

func (s *ContentService) CreateQuestion(tenantID string, req *QuestionRequest) (*model.Question, error) {
	if _, err := s.GetCategory(tenantID, req.CategoryID); err != nil {
		return nil, err
	}
	if *req.CorrectIdx < 0 || *req.CorrectIdx >= len(req.Options) {
		return nil, util.ErrInvalidAnswer
	}

	question := &model.Question{
		TenantID:    tenantID,
		CategoryID:  req.CategoryID,
		Text:        req.Text,
		Options:     req.Options,
		CorrectIdx:  *req.CorrectIdx,
		Explanation: req.Explanation,
		Difficulty:  3,
		Active:      true,
	}
	if req.Difficulty > 0 {
		question.Difficulty = req.Difficulty
	}
	if req.Active != nil {
		question.Active = *req.Active
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *ContentService) UpdateQuestion(tenantID, id string, req *QuestionRequest) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(tenantID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.CategoryID != question.CategoryID {
		if _, err := s.GetCategory(tenantID, req.CategoryID); err != nil {
			return nil, err
		}
	}
	if *req.CorrectIdx < 0 || *req.CorrectIdx >= len(req.Options) {
		return nil, util.ErrInvalidAnswer
	}

	question.CategoryID = req.CategoryID
	question.Text = req.Text
	question.Options = req.Options
	question.CorrectIdx = *req.CorrectIdx
	question.Explanation = req.Explanation
	if req.Difficulty > 0 {
		question.Difficulty = req.Difficulty
	}
	if req.Active != nil {
		question.Active = *req.Active
	}
	question.UpdatedAt = time.Now()

	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeactivateQuestion 题目可能被历史测验引用，删除只做停用
func (s *ContentService) DeactivateQuestion(tenantID, id string) error {
	if _, err := s.QuestionRepo.FindByID(tenantID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.Deactivate(tenantID, id)
}
