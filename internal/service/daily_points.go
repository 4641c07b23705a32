package service

import (
	"time"

	"certlab_backend/internal/model"
)

// BuildDailyPoints 按日重算积分（复用测验计分规则），生成截止 until 的
// 最近 days 天图表序列。图表需要连续横轴，空档日补 0
func BuildDailyPoints(quizzes []model.Quiz, days int, until time.Time, loc *time.Location) []model.DailyPoints {
	if days <= 0 {
		days = 30
	}

	daily := make(map[string]int)
	for i := range quizzes {
		q := &quizzes[i]
		if q.CompletedAt == nil {
			continue
		}
		daily[dateKey(*q.CompletedAt, loc)] += CalculateQuizPoints(q)
	}

	end := truncateToDay(until, loc)
	result := make([]model.DailyPoints, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		key := dateKey(day, loc)
		result = append(result, model.DailyPoints{
			Date:   key,
			Points: daily[key],
		})
	}
	return result
}
