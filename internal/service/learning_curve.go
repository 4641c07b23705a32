package service

import (
	"sort"
	"time"

	"certlab_backend/internal/model"
)

// BuildLearningCurve 把完成的测验按日历日聚合成学习曲线：
// 每个有作答记录的日期一个点（空档日不补零），
// 附带近 7 个有数据日的滑动平均和最小二乘趋势线
func BuildLearningCurve(quizzes []model.Quiz, loc *time.Location) model.LearningCurve {
	dayScores := make(map[string][]float64)
	for i := range quizzes {
		q := &quizzes[i]
		if q.CompletedAt == nil {
			continue
		}
		key := dateKey(*q.CompletedAt, loc)
		dayScores[key] = append(dayScores[key], float64(q.Score))
	}

	if len(dayScores) == 0 {
		return model.LearningCurve{Points: []model.LearningCurvePoint{}}
	}

	days := make([]string, 0, len(dayScores))
	for day := range dayScores {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]model.LearningCurvePoint, len(days))
	for i, day := range days {
		points[i] = model.LearningCurvePoint{
			Date:  day,
			Score: mean(dayScores[day]),
		}
	}

	// 近 7 个数据点（当日 + 前 6 个有数据日）的滑动平均
	for i := range points {
		start := i - 6
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += points[j].Score
		}
		points[i].MovingAverage = sum / float64(i-start+1)
	}

	slope, intercept := linearRegression(points)
	for i := range points {
		points[i].TrendLine = intercept + slope*float64(i)
	}

	return model.LearningCurve{Points: points, Slope: slope}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// linearRegression 对 (序号, 日均分) 做普通最小二乘，
// 点数不足或方差为零时退化为斜率 0 的水平线
func linearRegression(points []model.LearningCurvePoint) (slope, intercept float64) {
	n := float64(len(points))
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return 0, points[0].Score
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Score
		sumXY += x * p.Score
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
