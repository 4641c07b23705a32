package service

import (
	"math"
	"time"

	"certlab_backend/internal/model"
)

const (
	// 艾宾浩斯近似曲线参数：长期残留下限、衰减时间常数（天）
	retentionFloor    = 20.0
	retentionDecay    = 7.0
	reviewThreshold   = 50.0
	DefaultRetentionD = 30 // 默认投影天数
)

// BuildRetentionCurve 以最近一次测验完成日为起点投影记忆保持率。
// 第 0 天为 100%，之后指数衰减趋近下限，单调不增且永不为负；
// 低于复习阈值的日期标记 reviewRecommended
func BuildRetentionCurve(quizzes []model.Quiz, days int, loc *time.Location) []model.RetentionPoint {
	completed := completedSorted(quizzes)
	if len(completed) == 0 {
		return []model.RetentionPoint{}
	}
	if days <= 0 {
		days = DefaultRetentionD
	}

	lastDay := truncateToDay(*completed[len(completed)-1].CompletedAt, loc)

	points := make([]model.RetentionPoint, 0, days+1)
	for d := 0; d <= days; d++ {
		retention := retentionFloor + (100-retentionFloor)*math.Exp(-float64(d)/retentionDecay)
		if d == 0 {
			retention = 100
		}

		points = append(points, model.RetentionPoint{
			DayOffset:         d,
			Date:              dateKey(lastDay.AddDate(0, 0, d), loc),
			Retention:         retention,
			ReviewRecommended: retention < reviewThreshold,
		})
	}
	return points
}
