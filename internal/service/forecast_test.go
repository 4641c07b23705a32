package service

import (
	"math"
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func TestPredictExamReadinessInsufficientData(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	quizzes := []model.Quiz{quizAt(day, 90), quizAt(day.AddDate(0, 0, 1), 95)}

	r := PredictExamReadiness(quizzes, nil)
	if r.Score != 0 || r.Confidence != 0 || r.EstimatedPassProbability != 0 {
		t.Errorf("fewer than 3 quizzes should give neutral readiness, got %+v", r)
	}
	if r.ConfidenceInterval.Lower != 0 || r.ConfidenceInterval.Upper != 0 {
		t.Errorf("neutral readiness interval should be zero, got %+v", r.ConfidenceInterval)
	}
}

func TestPredictExamReadiness(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	for i := 0; i < 6; i++ {
		quizzes = append(quizzes, quizAt(base.AddDate(0, 0, i), 90))
	}
	mastery := []model.MasteryScore{{Score: 80}, {Score: 90}}

	r := PredictExamReadiness(quizzes, mastery)
	// 0.6*90 + 0.4*85 = 88
	if math.Abs(r.Score-88) > 1e-9 {
		t.Errorf("readiness = %v, want 88", r.Score)
	}
	if r.Confidence <= 0 || r.Confidence > 95 {
		t.Errorf("confidence out of range: %v", r.Confidence)
	}
	if r.ConfidenceInterval.Lower < 0 || r.ConfidenceInterval.Upper > 100 {
		t.Errorf("interval escaped [0,100]: %+v", r.ConfidenceInterval)
	}
	if r.ConfidenceInterval.Lower > r.Score || r.ConfidenceInterval.Upper < r.Score {
		t.Errorf("interval does not bracket score: %+v around %v", r.ConfidenceInterval, r.Score)
	}
	if r.EstimatedPassProbability <= 50 {
		t.Errorf("readiness above passing line should give pass probability > 50, got %v", r.EstimatedPassProbability)
	}
}

// 样本越多区间越窄
func TestReadinessIntervalNarrowsWithVolume(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	makeQuizzes := func(n int) []model.Quiz {
		var qs []model.Quiz
		for i := 0; i < n; i++ {
			qs = append(qs, quizAt(base.AddDate(0, 0, i), 70))
		}
		return qs
	}

	few := PredictExamReadiness(makeQuizzes(3), nil)
	many := PredictExamReadiness(makeQuizzes(9), nil)

	fewWidth := few.ConfidenceInterval.Upper - few.ConfidenceInterval.Lower
	manyWidth := many.ConfidenceInterval.Upper - many.ConfidenceInterval.Lower
	if manyWidth >= fewWidth {
		t.Errorf("interval should narrow with more data: few=%v many=%v", fewWidth, manyWidth)
	}
	if many.Confidence <= few.Confidence {
		t.Errorf("confidence should grow with volume: few=%v many=%v", few.Confidence, many.Confidence)
	}
}

func TestForecastPerformance(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	for i := 0; i < 6; i++ {
		quizzes = append(quizzes, quizAt(base.AddDate(0, 0, i), 60+i*2))
	}

	forecasts := ForecastPerformance(quizzes, time.UTC)
	if len(forecasts) != 3 {
		t.Fatalf("expected 3 horizons, got %d", len(forecasts))
	}

	for i, f := range forecasts {
		if f.PredictedScore < 0 || f.PredictedScore > 100 {
			t.Errorf("horizon %d predicted score out of range: %v", f.HorizonDays, f.PredictedScore)
		}
		if f.ConfidenceInterval.Lower < 0 || f.ConfidenceInterval.Upper > 100 {
			t.Errorf("horizon %d interval escaped [0,100]: %+v", f.HorizonDays, f.ConfidenceInterval)
		}
		if i > 0 && forecasts[i].HorizonDays <= forecasts[i-1].HorizonDays {
			t.Errorf("horizons not increasing")
		}
	}

	// 每天 +2 分的稳定提升应判为 improving
	if forecasts[0].Trend != model.TrendImproving {
		t.Errorf("trend = %s, want improving", forecasts[0].Trend)
	}
	// 上升趋势下建议时长少于下降趋势
	if forecasts[0].RequiredDailyStudyMinutes >= 60 {
		t.Errorf("improving trend should not demand max study minutes, got %d", forecasts[0].RequiredDailyStudyMinutes)
	}
}

// 跨度越长，未截断前的不确定带越宽
func TestForecastIntervalWidensWithHorizon(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	for i := 0; i < 8; i++ {
		quizzes = append(quizzes, quizAt(base.AddDate(0, 0, i), 50))
	}

	forecasts := ForecastPerformance(quizzes, time.UTC)
	prevWidth := -1.0
	for _, f := range forecasts {
		width := f.ConfidenceInterval.Upper - f.ConfidenceInterval.Lower
		if width <= prevWidth {
			t.Errorf("interval width not increasing with horizon: %v after %v", width, prevWidth)
		}
		prevWidth = width
	}
}

func TestForecastDeclineAndDegradation(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var declining []model.Quiz
	for i := 0; i < 6; i++ {
		declining = append(declining, quizAt(base.AddDate(0, 0, i), 90-i*3))
	}
	forecasts := ForecastPerformance(declining, time.UTC)
	if forecasts[0].Trend != model.TrendDeclining {
		t.Errorf("trend = %s, want declining", forecasts[0].Trend)
	}
	if forecasts[0].RequiredDailyStudyMinutes <= 45 {
		t.Errorf("declining trend should demand more minutes, got %d", forecasts[0].RequiredDailyStudyMinutes)
	}

	// 不足 3 次：按现有均分水平外推，趋势 stable
	few := []model.Quiz{quizAt(base, 80), quizAt(base.AddDate(0, 0, 1), 90)}
	flat := ForecastPerformance(few, time.UTC)
	for _, f := range flat {
		if f.PredictedScore != 85 {
			t.Errorf("degraded forecast should be flat at average 85, got %v", f.PredictedScore)
		}
		if f.Trend != model.TrendStable {
			t.Errorf("degraded forecast trend = %s, want stable", f.Trend)
		}
	}

	empty := ForecastPerformance(nil, time.UTC)
	if len(empty) != 3 {
		t.Fatalf("empty input should still return 3 horizons, got %d", len(empty))
	}
	for _, f := range empty {
		if f.PredictedScore != 0 {
			t.Errorf("no data should forecast 0, got %v", f.PredictedScore)
		}
	}
}
