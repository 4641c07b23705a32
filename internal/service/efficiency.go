package service

import (
	"time"

	"certlab_backend/internal/model"
)

// 学习速度的观察窗口（天）
const velocityWindowDays = 14

// 单次测验时长的合理性上限，超过视为挂机数据不计入时间指标
const maxPlausibleQuizDuration = 6 * time.Hour

// ComputeStudyEfficiency 汇总正确率、答题速度与得分效率。
// 时间指标只统计时长合理的测验；除数为零一律返回 0 而不是 NaN
func ComputeStudyEfficiency(quizzes []model.Quiz, loc *time.Location) model.StudyEfficiency {
	completed := completedSorted(quizzes)
	if len(completed) < MinQuizzesForAnalytics {
		return model.StudyEfficiency{}
	}

	totalQuestions := 0
	totalCorrect := 0
	var totalDuration time.Duration
	timedQuestions := 0
	totalPoints := 0
	var timedPoints int
	var scoreSum float64

	for i := range completed {
		q := &completed[i]
		totalQuestions += q.TotalQuestions
		totalCorrect += q.CorrectAnswers
		scoreSum += float64(q.Score)

		points := CalculateQuizPoints(q)
		totalPoints += points

		d := q.CompletedAt.Sub(q.StartedAt)
		if d > 0 && d <= maxPlausibleQuizDuration {
			totalDuration += d
			timedQuestions += q.TotalQuestions
			timedPoints += points
		}
	}

	accuracy := 0.0
	if totalQuestions > 0 {
		accuracy = float64(totalCorrect) / float64(totalQuestions) * 100
	}

	avgSecondsPerQuestion := 0.0
	if timedQuestions > 0 {
		avgSecondsPerQuestion = totalDuration.Seconds() / float64(timedQuestions)
	}

	pointsPerHour := 0.0
	if totalDuration > 0 {
		pointsPerHour = float64(timedPoints) / totalDuration.Hours()
	}

	velocity := learningVelocity(completed, loc)

	return model.StudyEfficiency{
		AccuracyRate:           accuracy,
		AverageTimePerQuestion: avgSecondsPerQuestion,
		PointsPerHour:          pointsPerHour,
		LearningVelocity:       velocity,
		OptimalStudyDuration:   optimalDuration(completed, scoreSum/float64(len(completed))),
		EfficiencyScore:        clampScore(0.7*accuracy + 0.3*paceScore(avgSecondsPerQuestion)),
	}
}

// learningVelocity 以最后一次完成日为锚点，对最近 14 个日历日的每日得分
// （空档日计 0）做最小二乘，斜率即每日得分变化趋势，可为负
func learningVelocity(completed []model.Quiz, loc *time.Location) float64 {
	if len(completed) == 0 {
		return 0
	}

	anchor := truncateToDay(*completed[len(completed)-1].CompletedAt, loc)
	daily := make(map[string]int)
	for i := range completed {
		q := &completed[i]
		daily[dateKey(*q.CompletedAt, loc)] += CalculateQuizPoints(q)
	}

	points := make([]model.LearningCurvePoint, velocityWindowDays)
	for i := 0; i < velocityWindowDays; i++ {
		day := anchor.AddDate(0, 0, i-velocityWindowDays+1)
		points[i] = model.LearningCurvePoint{Score: float64(daily[dateKey(day, loc)])}
	}

	slope, _ := linearRegression(points)
	return slope
}

// paceScore 把平均每题耗时映射到 0-100：30 秒内满分，120 秒以上 0 分。
// 没有有效时长数据时给中性 50 分
func paceScore(avgSeconds float64) float64 {
	if avgSeconds <= 0 {
		return 50
	}
	if avgSeconds <= 30 {
		return 100
	}
	if avgSeconds >= 120 {
		return 0
	}
	return (120 - avgSeconds) / 90 * 100
}

// optimalDuration 取高于平均分的测验的平均时长作为建议单次时长（分钟），
// 限制在 [15,90]，无可用时长时回退到 25 分钟
func optimalDuration(completed []model.Quiz, avgScore float64) int {
	var total time.Duration
	count := 0
	for i := range completed {
		q := &completed[i]
		d := q.CompletedAt.Sub(q.StartedAt)
		if d <= 0 || d > maxPlausibleQuizDuration {
			continue
		}
		if float64(q.Score) >= avgScore {
			total += d
			count++
		}
	}
	if count == 0 {
		return 25
	}

	minutes := int(total.Minutes()) / count
	if minutes < 15 {
		minutes = 15
	}
	if minutes > 90 {
		minutes = 90
	}
	return minutes
}
