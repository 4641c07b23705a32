package service

import (
	"math"
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func timedQuiz(completed time.Time, minutes int, total, correct, score int) model.Quiz {
	q := quizAt(completed, score)
	q.StartedAt = completed.Add(-time.Duration(minutes) * time.Minute)
	q.TotalQuestions = total
	q.CorrectAnswers = correct
	return q
}

func TestComputeStudyEfficiencyInsufficientData(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	eff := ComputeStudyEfficiency([]model.Quiz{quizAt(day, 90)}, time.UTC)
	if eff != (model.StudyEfficiency{}) {
		t.Errorf("fewer than 3 quizzes should give zero efficiency, got %+v", eff)
	}
}

func TestComputeStudyEfficiency(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	quizzes := []model.Quiz{
		timedQuiz(base, 10, 10, 8, 80),
		timedQuiz(base.AddDate(0, 0, 1), 10, 10, 9, 90),
		timedQuiz(base.AddDate(0, 0, 2), 10, 10, 7, 70),
	}

	eff := ComputeStudyEfficiency(quizzes, time.UTC)

	// 24/30 正确
	if math.Abs(eff.AccuracyRate-80) > 1e-9 {
		t.Errorf("accuracy = %v, want 80", eff.AccuracyRate)
	}
	// 30 分钟 / 30 题 = 60 秒每题
	if math.Abs(eff.AverageTimePerQuestion-60) > 1e-9 {
		t.Errorf("avg time per question = %v, want 60", eff.AverageTimePerQuestion)
	}
	if eff.PointsPerHour <= 0 {
		t.Errorf("points per hour should be positive, got %v", eff.PointsPerHour)
	}
	if eff.EfficiencyScore <= 0 || eff.EfficiencyScore > 100 {
		t.Errorf("efficiency score out of range: %v", eff.EfficiencyScore)
	}
	if eff.OptimalStudyDuration < 15 || eff.OptimalStudyDuration > 90 {
		t.Errorf("optimal duration out of range: %d", eff.OptimalStudyDuration)
	}
}

// 总题数为 0 不得出现 NaN
func TestComputeStudyEfficiencyZeroQuestions(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	for i := 0; i < 3; i++ {
		q := quizAt(base.AddDate(0, 0, i), 0)
		q.TotalQuestions = 0
		q.CorrectAnswers = 0
		quizzes = append(quizzes, q)
	}

	eff := ComputeStudyEfficiency(quizzes, time.UTC)
	if math.IsNaN(eff.AccuracyRate) || math.IsNaN(eff.AverageTimePerQuestion) ||
		math.IsNaN(eff.PointsPerHour) || math.IsNaN(eff.EfficiencyScore) {
		t.Errorf("zero questions produced NaN: %+v", eff)
	}
	if eff.AccuracyRate != 0 {
		t.Errorf("accuracy with zero questions = %v, want 0", eff.AccuracyRate)
	}
}

func TestLearningVelocitySign(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// 铺满整个 14 天窗口，每日得分单调变化（分数压在通过线下避免奖励跳变）
	makeRun := func(correctOnDay func(day int) int) []model.Quiz {
		var qs []model.Quiz
		for day := 0; day < velocityWindowDays; day++ {
			c := correctOnDay(day)
			qs = append(qs, timedQuiz(base.AddDate(0, 0, day), 10, 20, c, c*5))
		}
		return qs
	}

	rising := makeRun(func(day int) int { return day + 1 })
	if v := learningVelocity(completedSorted(rising), time.UTC); v <= 0 {
		t.Errorf("rising daily points should give positive velocity, got %v", v)
	}

	falling := makeRun(func(day int) int { return velocityWindowDays - day })
	if v := learningVelocity(completedSorted(falling), time.UTC); v >= 0 {
		t.Errorf("falling daily points should give negative velocity, got %v", v)
	}
}

func TestPaceScore(t *testing.T) {
	tests := []struct {
		seconds float64
		want    float64
	}{
		{0, 50},
		{20, 100},
		{30, 100},
		{75, 50},
		{120, 0},
		{300, 0},
	}
	for _, tt := range tests {
		if got := paceScore(tt.seconds); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("paceScore(%v) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}
