package service

import (
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func TestDetectBurnoutRiskInsufficientData(t *testing.T) {
	day := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	risk := DetectBurnoutRisk([]model.Quiz{quizAt(day, 80)}, time.UTC)
	if risk.Score != 0 {
		t.Errorf("insufficient data should give score 0, got %d", risk.Score)
	}
	if risk.RiskLevel != model.PriorityLow {
		t.Errorf("insufficient data should be low risk, got %s", risk.RiskLevel)
	}
	if len(risk.Recommendations) == 0 {
		t.Error("recommendations must never be empty")
	}
}

func TestDetectBurnoutRiskHealthyPace(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	quizzes := []model.Quiz{
		quizAt(base, 80),
		quizAt(base.AddDate(0, 0, 3), 85),
		quizAt(base.AddDate(0, 0, 6), 90),
	}

	risk := DetectBurnoutRisk(quizzes, time.UTC)
	if risk.RiskLevel != model.PriorityLow {
		t.Errorf("spaced-out study should be low risk, got %s (score %d)", risk.RiskLevel, risk.Score)
	}
	if risk.ConsecutiveDays != 1 {
		t.Errorf("consecutive days = %d, want 1", risk.ConsecutiveDays)
	}
	if risk.PerformanceDecline {
		t.Error("improving scores flagged as decline")
	}
	if len(risk.Recommendations) == 0 {
		t.Error("recommendations must never be empty")
	}
}

func TestDetectBurnoutRiskLongGrind(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var quizzes []model.Quiz
	// 连续 12 天高强度：每天 4 次，后段分数走低
	for day := 0; day < 12; day++ {
		score := 90
		if day >= 8 {
			score = 60
		}
		for n := 0; n < 4; n++ {
			quizzes = append(quizzes, quizAt(base.AddDate(0, 0, day).Add(time.Duration(n)*time.Hour), score))
		}
	}

	risk := DetectBurnoutRisk(quizzes, time.UTC)
	if risk.ConsecutiveDays != 12 {
		t.Errorf("consecutive days = %d, want 12", risk.ConsecutiveDays)
	}
	if !risk.PerformanceDecline {
		t.Error("score drop from 90 to 60 not detected as decline")
	}
	if risk.RiskLevel != model.PriorityHigh {
		t.Errorf("grind with decline should be high risk, got %s (score %d)", risk.RiskLevel, risk.Score)
	}
	if risk.Score > 100 {
		t.Errorf("score exceeded 100: %d", risk.Score)
	}
	if len(risk.Recommendations) < 2 {
		t.Errorf("multiple active factors should yield multiple recommendations, got %v", risk.Recommendations)
	}
}

func TestTrailingConsecutiveDaysBrokenStreak(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	quizzes := []model.Quiz{
		quizAt(base, 80),                  // 3月1日
		quizAt(base.AddDate(0, 0, 1), 80), // 3月2日
		quizAt(base.AddDate(0, 0, 4), 80), // 3月5日（3、4日断档）
		quizAt(base.AddDate(0, 0, 5), 80), // 3月6日
	}
	if got := trailingConsecutiveDays(completedSorted(quizzes), time.UTC); got != 2 {
		t.Errorf("trailing consecutive days = %d, want 2", got)
	}
}

func TestPeakPerformanceTimes(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	at := func(hour int, score int) model.Quiz {
		return quizAt(day.Add(time.Duration(hour)*time.Hour), score)
	}
	quizzes := []model.Quiz{
		at(9, 90), at(9, 70), // 9 点均分 80
		at(14, 95),           // 14 点均分 95
		at(21, 60),           // 21 点均分 60
		{TotalQuestions: 10}, // 未完成，不参与
	}

	peaks := PeakPerformanceTimes(quizzes, time.UTC)
	if len(peaks) != 3 {
		t.Fatalf("expected 3 hour buckets, got %d", len(peaks))
	}
	if peaks[0].Hour != 14 || peaks[0].AverageScore != 95 {
		t.Errorf("best hour = %+v, want hour 14 avg 95", peaks[0])
	}
	if peaks[1].Hour != 9 || peaks[1].AverageScore != 80 || peaks[1].QuizCount != 2 {
		t.Errorf("second hour = %+v, want hour 9 avg 80 count 2", peaks[1])
	}
	if peaks[2].Hour != 21 {
		t.Errorf("worst hour = %+v, want hour 21", peaks[2])
	}
}

func TestPeakPerformanceTimesEmpty(t *testing.T) {
	if peaks := PeakPerformanceTimes(nil, time.UTC); len(peaks) != 0 {
		t.Errorf("no quizzes should yield no buckets, got %+v", peaks)
	}
}
