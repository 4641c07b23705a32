package service

import (
	"fmt"
	"sort"
	"time"

	"certlab_backend/internal/model"
)

// 连续学习天数超过该值开始累积倦怠分
const sustainableStreakDays = 5

// DetectBurnoutRisk 根据连续学习天数与近期成绩滑坡估算倦怠风险。
// 分数 0-100，>=70 为 high，>=40 为 medium；始终至少给出一条建议
func DetectBurnoutRisk(quizzes []model.Quiz, loc *time.Location) model.BurnoutRisk {
	completed := completedSorted(quizzes)
	if len(completed) < MinQuizzesForAnalytics {
		return model.BurnoutRisk{
			Score:           0,
			RiskLevel:       model.PriorityLow,
			Recommendations: []string{"保持规律的学习节奏，再完成几次测验后可获得倦怠风险评估。"},
		}
	}

	consecutive := trailingConsecutiveDays(completed, loc)

	// 近 5 次与更早基线的均分对比，显著走低视为滑坡
	recent := completed[len(completed)-min(5, len(completed)):]
	earlier := completed[:len(completed)-len(recent)]
	recentAvg := averageScore(recent)
	decline := false
	if len(earlier) > 0 {
		decline = recentAvg < averageScore(earlier)-5
	}

	score := 0
	if consecutive > sustainableStreakDays {
		score += (consecutive - sustainableStreakDays) * 10
		if score > 60 {
			score = 60
		}
	}
	if decline {
		score += 30
	}
	// 近一周日均 3 次以上测验属于过量
	weekAgo := truncateToDay(*completed[len(completed)-1].CompletedAt, loc).AddDate(0, 0, -6)
	weekCount := 0
	for i := range completed {
		if !completed[i].CompletedAt.Before(weekAgo) {
			weekCount++
		}
	}
	if weekCount > 21 {
		score += 10
	}
	if score > 100 {
		score = 100
	}

	level := model.PriorityLow
	switch {
	case score >= 70:
		level = model.PriorityHigh
	case score >= 40:
		level = model.PriorityMedium
	}

	var recs []string
	if consecutive > sustainableStreakDays {
		recs = append(recs, fmt.Sprintf("已连续学习 %d 天，安排一天完全休息有助于巩固记忆。", consecutive))
	}
	if decline {
		recs = append(recs, "近期成绩有所下滑，放慢节奏、回顾错题比追加新题更有效。")
	}
	if weekCount > 21 {
		recs = append(recs, "本周测验频率偏高，把部分时间换成闲读或复习可以降低疲劳。")
	}
	if len(recs) == 0 {
		recs = append(recs, "当前学习节奏健康，继续保持每日适量练习。")
	}

	return model.BurnoutRisk{
		Score:              score,
		RiskLevel:          level,
		ConsecutiveDays:    consecutive,
		PerformanceDecline: decline,
		Recommendations:    recs,
	}
}

// trailingConsecutiveDays 从最近一次完成日往回数连续有测验的日历天数
func trailingConsecutiveDays(completed []model.Quiz, loc *time.Location) int {
	if len(completed) == 0 {
		return 0
	}

	days := make(map[string]bool)
	for i := range completed {
		days[dateKey(*completed[i].CompletedAt, loc)] = true
	}

	count := 0
	cursor := truncateToDay(*completed[len(completed)-1].CompletedAt, loc)
	for days[dateKey(cursor, loc)] {
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

func averageScore(quizzes []model.Quiz) float64 {
	if len(quizzes) == 0 {
		return 0
	}
	sum := 0.0
	for i := range quizzes {
		sum += float64(quizzes[i].Score)
	}
	return sum / float64(len(quizzes))
}

// PeakPerformanceTimes 按完成时刻（0-23 时）聚合平均分，
// 返回按平均分降序排列的时段列表
func PeakPerformanceTimes(quizzes []model.Quiz, loc *time.Location) []model.HourlyPerformance {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[int]*bucket)
	for i := range quizzes {
		q := &quizzes[i]
		if q.CompletedAt == nil {
			continue
		}
		hour := q.CompletedAt.In(loc).Hour()
		b := buckets[hour]
		if b == nil {
			b = &bucket{}
			buckets[hour] = b
		}
		b.sum += float64(q.Score)
		b.count++
	}

	result := make([]model.HourlyPerformance, 0, len(buckets))
	for hour, b := range buckets {
		result = append(result, model.HourlyPerformance{
			Hour:         hour,
			AverageScore: b.sum / float64(b.count),
			QuizCount:    b.count,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].AverageScore != result[j].AverageScore {
			return result[i].AverageScore > result[j].AverageScore
		}
		return result[i].Hour < result[j].Hour
	})
	return result
}
