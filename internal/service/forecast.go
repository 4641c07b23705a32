package service

import (
	"math"
	"sort"
	"time"

	"certlab_backend/internal/model"
)

// 分析函数的最小数据门槛：不足 3 次完成测验时返回中性结果而不是报错
const MinQuizzesForAnalytics = 3

// 趋势判定的斜率死区（分/天），避免噪声导致 improving/declining 来回抖动
const trendDeadband = 0.15

var forecastHorizons = []int{7, 30, 90}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// completedSorted 过滤出已完成的测验并按完成时间升序排列，不修改入参
func completedSorted(quizzes []model.Quiz) []model.Quiz {
	completed := make([]model.Quiz, 0, len(quizzes))
	for i := range quizzes {
		if quizzes[i].CompletedAt != nil {
			completed = append(completed, quizzes[i])
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.Before(*completed[j].CompletedAt)
	})
	return completed
}

// PredictExamReadiness 结合近期成绩、平均掌握度和样本量预测考试准备度。
// 样本越多置信度越高、置信区间越窄；区间始终落在 [0,100]
func PredictExamReadiness(quizzes []model.Quiz, mastery []model.MasteryScore) model.ExamReadiness {
	completed := completedSorted(quizzes)
	if len(completed) < MinQuizzesForAnalytics {
		return model.ExamReadiness{}
	}

	// 最近 5 次的平均分，权重高于整体掌握度
	recent := completed
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	recentSum := 0.0
	for i := range recent {
		recentSum += float64(recent[i].Score)
	}
	recentAvg := recentSum / float64(len(recent))

	masteryAvg := recentAvg
	if len(mastery) > 0 {
		sum := 0.0
		for i := range mastery {
			sum += mastery[i].Score
		}
		masteryAvg = sum / float64(len(mastery))
	}

	readiness := clampScore(0.6*recentAvg + 0.4*masteryAvg)

	confidence := 35 + 6*float64(len(completed))
	if confidence > 95 {
		confidence = 95
	}

	margin := (100 - confidence) / 2
	interval := model.ConfidenceInterval{
		Lower: clampScore(readiness - margin),
		Upper: clampScore(readiness + margin),
	}

	// 以通过线为中心的 logistic 映射，readiness=85 时约 50%
	passProb := 100 / (1 + math.Exp(-(readiness-float64(PassingScore))/8))

	return model.ExamReadiness{
		Score:                    readiness,
		Confidence:               confidence,
		ConfidenceInterval:       interval,
		EstimatedPassProbability: passProb,
	}
}

// ForecastPerformance 沿学习曲线趋势线外推 7/30/90 天。
// 跨度越长置信区间越宽（严格单调）；数据不足时给出当前均值的水平预测
func ForecastPerformance(quizzes []model.Quiz, loc *time.Location) []model.PerformanceForecast {
	completed := completedSorted(quizzes)
	curve := BuildLearningCurve(completed, loc)

	baseline := 0.0
	slope := 0.0
	if n := len(curve.Points); n > 0 {
		if len(completed) >= MinQuizzesForAnalytics {
			baseline = curve.Points[n-1].TrendLine
			slope = curve.Slope
		} else {
			// 样本太少，趋势不可信：按当前均值水平外推
			sum := 0.0
			for _, p := range curve.Points {
				sum += p.Score
			}
			baseline = sum / float64(n)
		}
	}

	trend := model.TrendStable
	switch {
	case slope > trendDeadband:
		trend = model.TrendImproving
	case slope < -trendDeadband:
		trend = model.TrendDeclining
	}

	forecasts := make([]model.PerformanceForecast, 0, len(forecastHorizons))
	for _, h := range forecastHorizons {
		predicted := clampScore(baseline + slope*float64(h))

		margin := 4 + 0.25*float64(h)
		interval := model.ConfidenceInterval{
			Lower: clampScore(predicted - margin),
			Upper: clampScore(predicted + margin),
		}

		minutes := 45
		switch trend {
		case model.TrendImproving:
			minutes = 30
		case model.TrendDeclining:
			minutes = 60
		}
		if predicted < float64(PassingScore) {
			minutes += 15
		}

		forecasts = append(forecasts, model.PerformanceForecast{
			HorizonDays:               h,
			PredictedScore:            predicted,
			ConfidenceInterval:        interval,
			Trend:                     trend,
			RequiredDailyStudyMinutes: minutes,
		})
	}
	return forecasts
}
