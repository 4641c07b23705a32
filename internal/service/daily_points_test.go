package service

import (
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func TestBuildDailyPoints(t *testing.T) {
	until := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	day8 := time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	day10 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	quizzes := []model.Quiz{
		quizAt(day8, 90),  // 10 + 9*5 + 25 = 80
		quizAt(day8, 50),  // 10 + 5*5 = 35
		quizAt(day10, 100), // 10 + 10*5 + 25 + 50 = 135
		{TotalQuestions: 10, Score: 100, StartedAt: day10}, // 未完成不计分
	}

	points := BuildDailyPoints(quizzes, 7, until, time.UTC)
	if len(points) != 7 {
		t.Fatalf("expected 7 days, got %d", len(points))
	}
	if points[0].Date != "2025-03-04" || points[6].Date != "2025-03-10" {
		t.Errorf("window = %s..%s, want 2025-03-04..2025-03-10", points[0].Date, points[6].Date)
	}

	byDate := map[string]int{}
	for _, p := range points {
		byDate[p.Date] = p.Points
	}
	if byDate["2025-03-08"] != 115 {
		t.Errorf("3月8日 points = %d, want 115", byDate["2025-03-08"])
	}
	if byDate["2025-03-10"] != 135 {
		t.Errorf("3月10日 points = %d, want 135", byDate["2025-03-10"])
	}
	if byDate["2025-03-05"] != 0 {
		t.Errorf("idle day points = %d, want 0", byDate["2025-03-05"])
	}
}
