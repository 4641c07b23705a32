package service

import "certlab_backend/internal/model"

// 计分规则（所有奖励独立叠加）
const (
	QuizCompletionPoints    = 10 // 完成任意测验
	CorrectAnswerPoints     = 5  // 每答对一题
	PassingBonusPoints      = 25 // 达到通过线
	PerfectScoreBonusPoints = 50 // 满分
	PassingScore            = 85 // 通过线（百分制）
)

// CalculateQuizPoints 把一次已完成的测验换算成积分。未交卷返回 0。
// 通过奖励同时检查 IsPassing 标志和分数线：两个信号理应一致，但历史数据
// 可能漂移，这里保留双重判断，不要简化成单边
func CalculateQuizPoints(quiz *model.Quiz) int {
	if quiz == nil || quiz.CompletedAt == nil {
		return 0
	}

	points := QuizCompletionPoints
	points += quiz.CorrectAnswers * CorrectAnswerPoints

	if quiz.IsPassing || quiz.Score >= PassingScore {
		points += PassingBonusPoints
	}
	if quiz.Score == 100 {
		points += PerfectScoreBonusPoints
	}

	return points
}
