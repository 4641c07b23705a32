package service

import (
	"testing"
	"time"
)

func TestAdvanceStreak(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)
	earlierToday := time.Date(2025, 6, 10, 8, 0, 0, 0, loc)

	tests := []struct {
		name        string
		current     int
		longest     int
		lastStudy   *time.Time
		wantCurrent int
		wantLongest int
	}{
		{"first ever study day", 0, 0, nil, 1, 1},
		{"same day keeps streak", 4, 6, &earlierToday, 4, 6},
		{"yesterday extends streak", 4, 6, &yesterday, 5, 6},
		{"extends past longest", 6, 6, &yesterday, 7, 7},
		{"gap resets to one", 9, 12, &threeDaysAgo, 1, 12},
		{"same day with zero current is repaired", 0, 3, &earlierToday, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, long := AdvanceStreak(tt.current, tt.longest, tt.lastStudy, now, loc)
			if cur != tt.wantCurrent || long != tt.wantLongest {
				t.Errorf("AdvanceStreak() = (%d, %d), want (%d, %d)", cur, long, tt.wantCurrent, tt.wantLongest)
			}
		})
	}
}

// 跨时区：UTC 晚上与东八区已是第二天
func TestAdvanceStreakTimezone(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	lastStudy := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC) // 东八区 6月11日 04:00
	now := time.Date(2025, 6, 11, 2, 0, 0, 0, time.UTC)        // 东八区 6月11日 10:00

	cur, _ := AdvanceStreak(3, 5, &lastStudy, now, shanghai)
	if cur != 3 {
		t.Errorf("same CST day should keep streak, got %d", cur)
	}

	curUTC, _ := AdvanceStreak(3, 5, &lastStudy, now, time.UTC)
	if curUTC != 4 {
		t.Errorf("UTC crossed midnight, expected streak 4, got %d", curUTC)
	}
}

func TestUpdateMasteryScore(t *testing.T) {
	tests := []struct {
		name      string
		old       float64
		quizCount int
		observed  float64
		want      float64
	}{
		{"first observation takes raw value", 0, 0, 70, 70},
		{"ewma blends toward observation", 50, 3, 100, 65},
		{"ewma decays on poor result", 80, 5, 0, 56},
		{"observation above range is clamped", 90, 2, 150, 93},
		{"negative observation is clamped", 40, 2, -20, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateMasteryScore(tt.old, tt.quizCount, tt.observed)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("UpdateMasteryScore(%v, %d, %v) = %v, want %v", tt.old, tt.quizCount, tt.observed, got, tt.want)
			}
		})
	}
}
