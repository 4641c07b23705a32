package service

import (
	"math"
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func quizAt(completed time.Time, score int) model.Quiz {
	return model.Quiz{
		TotalQuestions: 10,
		CorrectAnswers: score / 10,
		Score:          score,
		StartedAt:      completed.Add(-15 * time.Minute),
		CompletedAt:    &completed,
	}
}

func TestBuildLearningCurveEmpty(t *testing.T) {
	curve := BuildLearningCurve(nil, time.UTC)
	if curve.Points == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(curve.Points) != 0 || curve.Slope != 0 {
		t.Errorf("empty input should yield empty curve, got %+v", curve)
	}
}

func TestBuildLearningCurveDailyAverage(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	quizzes := []model.Quiz{
		quizAt(day, 60),
		quizAt(day.Add(2*time.Hour), 80),
		quizAt(day.AddDate(0, 0, 2), 90), // 隔一天，中间不补零
	}

	curve := BuildLearningCurve(quizzes, time.UTC)
	if len(curve.Points) != 2 {
		t.Fatalf("expected 2 points (gap days skipped), got %d", len(curve.Points))
	}
	if curve.Points[0].Date != "2025-03-01" || curve.Points[0].Score != 70 {
		t.Errorf("day 1 = %+v, want date 2025-03-01 score 70", curve.Points[0])
	}
	if curve.Points[1].Date != "2025-03-03" || curve.Points[1].Score != 90 {
		t.Errorf("day 2 = %+v, want date 2025-03-03 score 90", curve.Points[1])
	}
}

func TestBuildLearningCurveMovingAverage(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	scores := []int{50, 60, 70, 80, 90, 100, 90, 80}
	for i, s := range scores {
		quizzes = append(quizzes, quizAt(base.AddDate(0, 0, i), s))
	}

	curve := BuildLearningCurve(quizzes, time.UTC)
	if len(curve.Points) != 8 {
		t.Fatalf("expected 8 points, got %d", len(curve.Points))
	}

	// 第一个点的滑动平均就是它自己
	if curve.Points[0].MovingAverage != 50 {
		t.Errorf("MA[0] = %v, want 50", curve.Points[0].MovingAverage)
	}
	// 第三个点：avg(50,60,70) = 60
	if curve.Points[2].MovingAverage != 60 {
		t.Errorf("MA[2] = %v, want 60", curve.Points[2].MovingAverage)
	}
	// 第八个点只看最近 7 天：avg(60..80) = (60+70+80+90+100+90+80)/7
	want := (60.0 + 70 + 80 + 90 + 100 + 90 + 80) / 7
	if math.Abs(curve.Points[7].MovingAverage-want) > 1e-9 {
		t.Errorf("MA[7] = %v, want %v", curve.Points[7].MovingAverage, want)
	}
}

func TestBuildLearningCurveTrend(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	for i := 0; i < 5; i++ {
		quizzes = append(quizzes, quizAt(base.AddDate(0, 0, i), 60+i*5))
	}

	curve := BuildLearningCurve(quizzes, time.UTC)
	if math.Abs(curve.Slope-5) > 1e-9 {
		t.Errorf("perfectly linear data should give slope 5, got %v", curve.Slope)
	}
	if math.Abs(curve.Points[0].TrendLine-60) > 1e-9 {
		t.Errorf("trend line at x=0 should be 60, got %v", curve.Points[0].TrendLine)
	}
	if math.Abs(curve.Points[4].TrendLine-80) > 1e-9 {
		t.Errorf("trend line at x=4 should be 80, got %v", curve.Points[4].TrendLine)
	}
}

func TestBuildLearningCurveSinglePoint(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	curve := BuildLearningCurve([]model.Quiz{quizAt(day, 75)}, time.UTC)
	if len(curve.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(curve.Points))
	}
	if curve.Slope != 0 {
		t.Errorf("single point slope should be 0, got %v", curve.Slope)
	}
	if curve.Points[0].TrendLine != 75 {
		t.Errorf("single point trend should equal score, got %v", curve.Points[0].TrendLine)
	}
}

// 未完成的测验不参与曲线
func TestBuildLearningCurveIgnoresIncomplete(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	quizzes := []model.Quiz{
		quizAt(day, 80),
		{TotalQuestions: 10, Score: 100, StartedAt: day},
	}
	curve := BuildLearningCurve(quizzes, time.UTC)
	if len(curve.Points) != 1 || curve.Points[0].Score != 80 {
		t.Errorf("incomplete quiz leaked into curve: %+v", curve.Points)
	}
}
