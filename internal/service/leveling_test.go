package service

import "testing"

func TestCalculatePointsForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 300},
		{4, 600},
		{5, 1000},
		{10, 4500},
		{0, 0},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := CalculatePointsForLevel(tt.level); got != tt.want {
			t.Errorf("CalculatePointsForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCalculateLevelFromPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{599, 3},
		{600, 4},
		{650, 4},
		{999, 4},
		{1000, 5},
		{-50, 1},
	}
	for _, tt := range tests {
		if got := CalculateLevelFromPoints(tt.points); got != tt.want {
			t.Errorf("CalculateLevelFromPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

// 任意等级的阈值再换算回等级必须得到同一个等级
func TestLevelInverseLaw(t *testing.T) {
	for level := 1; level <= 100; level++ {
		threshold := CalculatePointsForLevel(level)
		if got := CalculateLevelFromPoints(threshold); got != level {
			t.Fatalf("inverse law broken at level %d: threshold %d maps to level %d", level, threshold, got)
		}
		// 阈值前一分仍属于上一级
		if level > 1 {
			if got := CalculateLevelFromPoints(threshold - 1); got != level-1 {
				t.Fatalf("level %d threshold-1 (%d) maps to %d, want %d", level, threshold-1, got, level-1)
			}
		}
	}
}

func TestLevelMonotonicity(t *testing.T) {
	prevThreshold := -1
	for level := 1; level <= 50; level++ {
		th := CalculatePointsForLevel(level)
		if th <= prevThreshold && level > 1 {
			t.Fatalf("thresholds not strictly increasing at level %d: %d <= %d", level, th, prevThreshold)
		}
		prevThreshold = th
	}

	prevLevel := 0
	for points := 0; points <= 5000; points += 17 {
		l := CalculateLevelFromPoints(points)
		if l < prevLevel {
			t.Fatalf("level decreased from %d to %d at %d points", prevLevel, l, points)
		}
		prevLevel = l
	}
}

func TestSnapshotLevel(t *testing.T) {
	tests := []struct {
		name         string
		points       int
		wantLevel    int
		wantInLevel  int
		wantNeeded   int
		wantProgress float64
	}{
		{"zero points", 0, 1, 0, 100, 0},
		{"level 2 start", 100, 2, 0, 200, 0},
		{"halfway through level 2", 200, 2, 100, 200, 50},
		{"one short of level 3", 299, 2, 199, 200, 99.5},
		{"stored level must be ignored", 650, 4, 50, 400, 12.5},
		{"negative treated as zero", -10, 1, 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := SnapshotLevel(tt.points)
			if info.Level != tt.wantLevel {
				t.Errorf("Level = %d, want %d", info.Level, tt.wantLevel)
			}
			if info.PointsInLevel != tt.wantInLevel {
				t.Errorf("PointsInLevel = %d, want %d", info.PointsInLevel, tt.wantInLevel)
			}
			if info.PointsForLevel != tt.wantNeeded {
				t.Errorf("PointsForLevel = %d, want %d", info.PointsForLevel, tt.wantNeeded)
			}
			if info.ProgressPercent != tt.wantProgress {
				t.Errorf("ProgressPercent = %v, want %v", info.ProgressPercent, tt.wantProgress)
			}
		})
	}
}
