package service

import (
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func TestBuildRetentionCurve(t *testing.T) {
	day := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	points := BuildRetentionCurve([]model.Quiz{quizAt(day, 85)}, 30, time.UTC)

	if len(points) != 31 {
		t.Fatalf("expected 31 points (day 0..30), got %d", len(points))
	}
	if points[0].Retention != 100 {
		t.Errorf("day 0 retention = %v, want 100", points[0].Retention)
	}
	if points[0].Date != "2025-03-10" {
		t.Errorf("day 0 date = %s, want 2025-03-10", points[0].Date)
	}
	if points[0].ReviewRecommended {
		t.Error("day 0 should not recommend review")
	}
	if points[30].Date != "2025-04-09" {
		t.Errorf("day 30 date = %s, want 2025-04-09", points[30].Date)
	}
}

// 对任意 d1 < d2，保持率单调不增且始终落在 [0,100]
func TestRetentionMonotonicity(t *testing.T) {
	day := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	points := BuildRetentionCurve([]model.Quiz{quizAt(day, 85)}, 90, time.UTC)

	prev := 101.0
	for _, p := range points {
		if p.Retention > prev {
			t.Fatalf("retention increased at day %d: %v > %v", p.DayOffset, p.Retention, prev)
		}
		if p.Retention < 0 || p.Retention > 100 {
			t.Fatalf("retention out of range at day %d: %v", p.DayOffset, p.Retention)
		}
		prev = p.Retention
	}

	// 长期趋近下限但不归零
	last := points[len(points)-1].Retention
	if last <= 0 || last > 30 {
		t.Errorf("long-term retention should asymptote above zero, got %v", last)
	}
}

func TestRetentionReviewThreshold(t *testing.T) {
	day := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	points := BuildRetentionCurve([]model.Quiz{quizAt(day, 85)}, 30, time.UTC)

	// 一旦推荐复习，其后每天都应维持推荐（曲线单调不增）
	recommendedSeen := false
	firstReviewDay := -1
	for _, p := range points {
		if p.ReviewRecommended {
			if !recommendedSeen {
				firstReviewDay = p.DayOffset
			}
			recommendedSeen = true
			if p.Retention >= 50 {
				t.Errorf("day %d recommended review at retention %v", p.DayOffset, p.Retention)
			}
		} else if recommendedSeen {
			t.Fatalf("review recommendation flipped off at day %d", p.DayOffset)
		}
	}
	if !recommendedSeen {
		t.Fatal("30-day projection should eventually recommend review")
	}
	if firstReviewDay < 3 {
		t.Errorf("review recommended unrealistically early: day %d", firstReviewDay)
	}
}

func TestBuildRetentionCurveNoData(t *testing.T) {
	points := BuildRetentionCurve(nil, 30, time.UTC)
	if points == nil || len(points) != 0 {
		t.Errorf("no quizzes should yield empty slice, got %v", points)
	}
}
