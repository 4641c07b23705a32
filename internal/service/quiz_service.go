package service

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/util"
	"certlab_backend/pkg/logger"
	"certlab_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultQuizSize = 10
	maxQuizSize     = 50
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	CategoryRepo *repository.CategoryRepository
	MasteryRepo  *repository.MasteryRepository
	ProgressRepo *repository.ProgressRepository
	StatsRepo    *repository.GameStatsRepository
	BadgeRepo    *repository.BadgeRepository
	Location     *time.Location
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	categoryRepo *repository.CategoryRepository,
	masteryRepo *repository.MasteryRepository,
	progressRepo *repository.ProgressRepository,
	statsRepo *repository.GameStatsRepository,
	badgeRepo *repository.BadgeRepository,
	loc *time.Location,
) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		CategoryRepo: categoryRepo,
		MasteryRepo:  masteryRepo,
		ProgressRepo: progressRepo,
		StatsRepo:    statsRepo,
		BadgeRepo:    badgeRepo,
		Location:     loc,
	}
}

type StartQuizRequest struct {
	Mode          model.QuizMode `json:"mode"`
	CategoryIDs   []string       `json:"categoryIds"`
	QuestionCount int            `json:"questionCount"`
}

// StartQuiz 组卷并创建测验。自适应模式按掌握度选择难度窗口，
// 其余模式在全部难度内随机抽题
func (s *QuizService) StartQuiz(tenantID string, userID uint, req *StartQuizRequest) (*model.Quiz, error) {
	mode := req.Mode
	switch mode {
	case model.ModeStudy, model.ModeQuiz, model.ModeAdaptive:
	case "":
		mode = model.ModeQuiz
	default:
		return nil, fmt.Errorf("unknown quiz mode %q", req.Mode)
	}

	count := req.QuestionCount
	if count <= 0 {
		count = defaultQuizSize
	}
	if count > maxQuizSize {
		count = maxQuizSize
	}

	var categories []model.Category
	if len(req.CategoryIDs) > 0 {
		found, err := s.CategoryRepo.FindByIDs(tenantID, req.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(req.CategoryIDs) {
			return nil, util.ErrCategoryNotFound
		}
		categories = found
	} else {
		all, err := s.CategoryRepo.ListByTenant(tenantID, true)
		if err != nil {
			return nil, err
		}
		categories = all
	}
	if len(categories) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	categoryIDs := make([]string, len(categories))
	for i, c := range categories {
		categoryIDs[i] = c.ID
	}

	minDiff, maxDiff := 0, 0
	if mode == model.ModeAdaptive {
		minDiff, maxDiff = s.adaptiveWindow(tenantID, userID, categoryIDs)
	}

	candidates, err := s.QuestionRepo.FindCandidates(tenantID, categoryIDs, minDiff, maxDiff)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 && mode == model.ModeAdaptive {
		// 难度窗口内没题就放开窗口，宁可出题也不要空卷
		candidates, err = s.QuestionRepo.FindCandidates(tenantID, categoryIDs, 0, 0)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	quiz := &model.Quiz{
		TenantID:       tenantID,
		UserID:         userID,
		Mode:           mode,
		TotalQuestions: len(candidates),
		StartedAt:      time.Now(),
		Categories:     categories,
	}
	for i := range candidates {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			QuestionID: candidates[i].ID,
			Position:   i + 1,
		})
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	logger.Log.Info("quiz started",
		zap.String("quizId", quiz.ID),
		zap.Uint("userId", userID),
		zap.String("mode", string(mode)),
		zap.Int("questions", quiz.TotalQuestions))

	return s.GetQuiz(tenantID, userID, quiz.ID)
}

// adaptiveWindow 由所选领域的平均掌握度推导出题难度窗口
func (s *QuizService) adaptiveWindow(tenantID string, userID uint, categoryIDs []string) (int, int) {
	var sum float64
	n := 0
	for _, id := range categoryIDs {
		m, err := s.MasteryRepo.FindByCategory(tenantID, userID, id)
		if err != nil {
			continue
		}
		sum += m.Score
		n++
	}
	if n == 0 {
		return 1, 3
	}
	return difficultyWindow(sum / float64(n))
}

// difficultyWindow 掌握度到难度窗口的映射，纯函数便于测试
func difficultyWindow(avgMastery float64) (int, int) {
	switch {
	case avgMastery < 40:
		return 1, 2
	case avgMastery < 60:
		return 2, 3
	case avgMastery < 80:
		return 3, 4
	default:
		return 4, 5
	}
}

func (s *QuizService) GetQuiz(tenantID string, userID uint, id string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindForUser(tenantID, userID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(tenantID string, userID uint, completedOnly bool, page, pageSize int) ([]model.Quiz, int64, error) {
	return s.QuizRepo.ListByUser(tenantID, userID, completedOnly, page, pageSize)
}

func (s *QuizService) ListInProgress(tenantID string, userID uint) ([]model.Quiz, error) {
	return s.QuizRepo.FindInProgress(tenantID, userID)
}

type AnswerRequest struct {
	QuestionID  string `json:"questionId" binding:"required"`
	SelectedIdx *int   `json:"selectedIdx" binding:"required"`
}

type AnswerResult struct {
	Recorded       bool   `json:"recorded"`
	Correct        *bool  `json:"correct,omitempty"`        // 仅练习模式立即反馈
	CorrectIdx     *int   `json:"correctIdx,omitempty"`     // 仅练习模式
	Explanation    string `json:"explanation,omitempty"`    // 仅练习模式
	NextQuestionID string `json:"nextQuestionId,omitempty"` // 仅自适应模式：按位置顺序的下一道未答题
}

// AnswerQuestion 记录一次作答。每题只能答一次；
// 练习模式立即返回对错与解析，测验模式交卷后才揭晓
func (s *QuizService) AnswerQuestion(tenantID string, userID uint, quizID string, req *AnswerRequest) (*AnswerResult, error) {
	quiz, err := s.GetQuiz(tenantID, userID, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsCompleted() {
		return nil, util.ErrQuizAlreadySubmitted
	}

	qq, err := s.QuizRepo.FindQuizQuestion(quiz.ID, req.QuestionID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	if qq.SelectedIdx != nil {
		return nil, util.ErrQuestionAnswered
	}
	if qq.Question == nil {
		return nil, util.ErrQuestionNotFound
	}

	idx := *req.SelectedIdx
	if idx < 0 || idx >= len(qq.Question.Options) {
		return nil, util.ErrInvalidAnswer
	}

	now := time.Now()
	correct := idx == qq.Question.CorrectIdx
	qq.SelectedIdx = &idx
	qq.Correct = &correct
	qq.AnsweredAt = &now
	if err := s.QuizRepo.UpdateQuizQuestion(qq); err != nil {
		return nil, err
	}

	result := &AnswerResult{Recorded: true}
	if quiz.Mode == model.ModeStudy {
		result.Correct = &correct
		correctIdx := qq.Question.CorrectIdx
		result.CorrectIdx = &correctIdx
		result.Explanation = qq.Question.Explanation
	}
	if quiz.Mode == model.ModeAdaptive {
		// quiz 是作答前加载的快照，刚答的这题内存里还是未答状态，按 ID 跳过
		for i := range quiz.Questions {
			next := &quiz.Questions[i]
			if next.QuestionID != req.QuestionID && next.SelectedIdx == nil {
				result.NextQuestionID = next.QuestionID
				break
			}
		}
	}
	return result, nil
}

// AbandonQuiz 放弃一个进行中的测验。已交卷的不可删除
func (s *QuizService) AbandonQuiz(tenantID string, userID uint, quizID string) error {
	quiz, err := s.GetQuiz(tenantID, userID, quizID)
	if err != nil {
		return err
	}
	if quiz.IsCompleted() {
		return util.ErrQuizAlreadySubmitted
	}

	deleted, err := s.QuizRepo.DeleteInProgress(tenantID, userID, quizID)
	if err != nil {
		return err
	}
	if !deleted {
		// 查出来还在进行中，删的时候已经交卷了
		return util.ErrQuizAlreadySubmitted
	}

	logger.Log.Info("quiz abandoned",
		zap.String("quizId", quizID),
		zap.Uint("userId", userID))
	return nil
}

type SubmitResult struct {
	Quiz          *model.Quiz   `json:"quiz"`
	PointsAwarded int           `json:"pointsAwarded"`
	Level         LevelInfo     `json:"level"`
	CurrentStreak int           `json:"currentStreak"`
	NewBadges     []model.Badge `json:"newBadges"`
}

// SubmitQuiz 交卷。评分、积分、连续天数、掌握度、累计进度和徽章
// 在同一事务内落库；completed_at 的条件更新保证重复提交只生效一次
func (s *QuizService) SubmitQuiz(tenantID string, userID uint, quizID string) (*SubmitResult, error) {
	quiz, err := s.GetQuiz(tenantID, userID, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.IsCompleted() {
		return nil, util.ErrQuizAlreadySubmitted
	}

	total := quiz.TotalQuestions
	correct := 0
	// 按考纲域聚合本卷表现，驱动掌握度与进度更新
	type categoryTally struct {
		answered int
		correct  int
	}
	byCategory := make(map[string]*categoryTally)
	for i := range quiz.Questions {
		qq := &quiz.Questions[i]
		if qq.Question == nil {
			continue
		}
		t := byCategory[qq.Question.CategoryID]
		if t == nil {
			t = &categoryTally{}
			byCategory[qq.Question.CategoryID] = t
		}
		t.answered++
		if qq.Correct != nil && *qq.Correct {
			correct++
			t.correct++
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	isPassing := score >= PassingScore
	now := time.Now()

	completed := *quiz
	completed.CorrectAnswers = correct
	completed.Score = score
	completed.IsPassing = isPassing
	completed.CompletedAt = &now
	points := CalculateQuizPoints(&completed)

	var stats *model.UserGameStats
	var newBadges []model.Badge

	err = s.QuizRepo.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.QuizRepo.Finalize(tx, quiz.ID, score, correct, isPassing, now)
		if err != nil {
			return err
		}
		if !ok {
			return util.ErrQuizAlreadySubmitted
		}

		stats, err = s.StatsRepo.FindOrCreateTx(tx, tenantID, userID)
		if err != nil {
			return err
		}

		stats.TotalPoints += points
		cur, longest := AdvanceStreak(stats.CurrentStreak, stats.LongestStreak, stats.LastStudyDate, now, s.Location)
		stats.CurrentStreak = cur
		stats.LongestStreak = longest
		stats.LastStudyDate = &now
		stats.QuizzesTaken++
		if score == 100 {
			stats.PerfectScores++
		}
		// Level 只是展示缓存，读取侧仍会由 TotalPoints 重算
		stats.Level = CalculateLevelFromPoints(stats.TotalPoints)

		for categoryID, tally := range byCategory {
			observed := float64(tally.correct) / float64(tally.answered) * 100

			var existing model.MasteryScore
			err := tx.Where("tenant_id = ? AND user_id = ? AND category_id = ?", tenantID, userID, categoryID).
				First(&existing).Error
			if err != nil && err != gorm.ErrRecordNotFound {
				return err
			}

			updated := UpdateMasteryScore(existing.Score, existing.QuizCount, observed)
			record := &model.MasteryScore{
				TenantID:   tenantID,
				UserID:     userID,
				CategoryID: categoryID,
				Score:      updated,
				QuizCount:  existing.QuizCount + 1,
				LastQuizAt: now,
			}
			if err := s.MasteryRepo.UpsertTx(tx, record); err != nil {
				return err
			}

			if err := s.ProgressRepo.IncrementTx(tx, tenantID, userID, categoryID, tally.answered, tally.correct); err != nil {
				return err
			}
		}

		newBadges, err = s.awardBadgesTx(tx, stats)
		if err != nil {
			return err
		}
		stats.BadgeCount += len(newBadges)

		return s.StatsRepo.SaveTx(tx, stats)
	})
	if err != nil {
		return nil, err
	}

	monitoring.QuizSubmitted.WithLabelValues(string(quiz.Mode), strconv.FormatBool(isPassing)).Inc()
	monitoring.PointsAwarded.Add(float64(points))
	for _, b := range newBadges {
		monitoring.BadgesUnlocked.WithLabelValues(b.Code).Inc()
	}

	logger.Log.Info("quiz submitted",
		zap.String("quizId", quiz.ID),
		zap.Uint("userId", userID),
		zap.Int("score", score),
		zap.Int("points", points),
		zap.Int("newBadges", len(newBadges)))

	final, err := s.GetQuiz(tenantID, userID, quiz.ID)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Quiz:          final,
		PointsAwarded: points,
		Level:         SnapshotLevel(stats.TotalPoints),
		CurrentStreak: stats.CurrentStreak,
		NewBadges:     newBadges,
	}, nil
}

// awardBadgesTx 对照徽章规则表发放新徽章，已有的不重复发
func (s *QuizService) awardBadgesTx(tx *gorm.DB, stats *model.UserGameStats) ([]model.Badge, error) {
	var earned []model.Badge
	now := time.Now()
	for _, def := range badgeCatalog {
		if !def.Condition(stats) {
			continue
		}
		has, err := s.BadgeRepo.HasBadgeTx(tx, stats.UserID, def.Code)
		if err != nil {
			return nil, err
		}
		if has {
			continue
		}

		badge := model.Badge{
			TenantID: stats.TenantID,
			UserID:   stats.UserID,
			Code:     def.Code,
			Name:     def.Name,
			Icon:     def.Icon,
			EarnedAt: now,
		}
		if err := s.BadgeRepo.CreateTx(tx, &badge); err != nil {
			return nil, err
		}
		earned = append(earned, badge)
	}
	return earned, nil
}
