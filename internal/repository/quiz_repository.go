package repository

import (
	"certlab_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// 创建测验及其题目快照，同一事务内完成
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

// 测验只能被其创建者访问
func (r *QuizRepository) FindForUser(tenantID string, userID uint, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND id = ?", tenantID, userID, id).
		Preload("Categories").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.position ASC")
		}).
		Preload("Questions.Question").
		First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) ListByUser(tenantID string, userID uint, completedOnly bool, page, pageSize int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	query := r.DB.Model(&model.Quiz{}).Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	if completedOnly {
		query = query.Where("completed_at IS NOT NULL")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("Categories").
		Find(&quizzes).Error
	return quizzes, total, err
}

// 进行中的测验（未提交）
func (r *QuizRepository) FindInProgress(tenantID string, userID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND completed_at IS NULL", tenantID, userID).
		Order("started_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// 分析引擎的输入：已完成测验按完成时间升序
func (r *QuizRepository) ListCompleted(tenantID string, userID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND completed_at IS NOT NULL", tenantID, userID).
		Order("completed_at ASC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CountCompleted(tenantID string, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("tenant_id = ? AND user_id = ? AND completed_at IS NOT NULL", tenantID, userID).
		Count(&count).Error
	return count, err
}

// 最近一次完成时间，用于分析缓存键
func (r *QuizRepository) LatestCompletedAt(tenantID string, userID uint) (*time.Time, error) {
	var quiz model.Quiz
	err := r.DB.Where("tenant_id = ? AND user_id = ? AND completed_at IS NOT NULL", tenantID, userID).
		Order("completed_at DESC").
		Select("completed_at").
		First(&quiz).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return quiz.CompletedAt, nil
}

// TenantQuizStats 管理端看板的测验聚合
type TenantQuizStats struct {
	Total        int64   `json:"total"`
	Completed    int64   `json:"completed"`
	Passed       int64   `json:"passed"`
	AverageScore float64 `json:"averageScore"`
}

func (r *QuizRepository) TenantStats(tenantID string) (*TenantQuizStats, error) {
	var stats TenantQuizStats
	if err := r.DB.Model(&model.Quiz{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	err := r.DB.Model(&model.Quiz{}).
		Where("tenant_id = ? AND completed_at IS NOT NULL", tenantID).
		Select("COUNT(*) AS completed, COALESCE(SUM(is_passing), 0) AS passed, COALESCE(AVG(score), 0) AS average_score").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteInProgress 删除一个未交卷的测验及其题目快照和分类关联。
// completed_at IS NULL 条件防止并发交卷后误删成绩
func (r *QuizRepository) DeleteInProgress(tenantID string, userID uint, id string) (bool, error) {
	var deleted bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("tenant_id = ? AND user_id = ? AND id = ? AND completed_at IS NULL", tenantID, userID, id).
			Delete(&model.Quiz{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM quiz_categories WHERE quiz_id = ?", id).Error
	})
	return deleted, err
}

func (r *QuizRepository) FindQuizQuestion(quizID string, questionID string) (*model.QuizQuestion, error) {
	var qq model.QuizQuestion
	err := r.DB.Where("quiz_id = ? AND question_id = ?", quizID, questionID).
		Preload("Question").
		First(&qq).Error
	return &qq, err
}

func (r *QuizRepository) UpdateQuizQuestion(qq *model.QuizQuestion) error {
	return r.DB.Save(qq).Error
}

// Finalize 在事务内提交测验成绩。WHERE completed_at IS NULL 保证恰好一次：
// 并发重复提交只有一个 UPDATE 生效，其余返回 false
func (r *QuizRepository) Finalize(tx *gorm.DB, quizID string, score int, correct int, isPassing bool, completedAt time.Time) (bool, error) {
	result := tx.Model(&model.Quiz{}).
		Where("id = ? AND completed_at IS NULL", quizID).
		Updates(map[string]interface{}{
			"score":           score,
			"correct_answers": correct,
			"is_passing":      isPassing,
			"completed_at":    completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
