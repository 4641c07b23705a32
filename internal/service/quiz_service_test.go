package service

import "testing"

func TestDifficultyWindow(t *testing.T) {
	tests := []struct {
		mastery float64
		wantMin int
		wantMax int
	}{
		{0, 1, 2},
		{39.9, 1, 2},
		{40, 2, 3},
		{59.9, 2, 3},
		{60, 3, 4},
		{79.9, 3, 4},
		{80, 4, 5},
		{100, 4, 5},
	}
	for _, tt := range tests {
		lo, hi := difficultyWindow(tt.mastery)
		if lo != tt.wantMin || hi != tt.wantMax {
			t.Errorf("difficultyWindow(%v) = (%d,%d), want (%d,%d)", tt.mastery, lo, hi, tt.wantMin, tt.wantMax)
		}
	}
}
