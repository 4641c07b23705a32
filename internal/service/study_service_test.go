package service

import (
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func TestFinalizeSession(t *testing.T) {
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endedAt time.Time
		want    int
	}{
		{"regular session", start.Add(45 * time.Minute), 45},
		{"sub minute counts as one", start.Add(20 * time.Second), 1},
		{"rounds down partial minutes", start.Add(30*time.Minute + 59*time.Second), 30},
		{"forgotten timer capped", start.Add(26 * time.Hour), maxSessionMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &model.StudySession{StartedAt: start}
			finalizeSession(session, tt.endedAt)

			if session.Duration != tt.want {
				t.Errorf("duration = %d, want %d", session.Duration, tt.want)
			}
			if session.EndedAt == nil || !session.EndedAt.Equal(tt.endedAt) {
				t.Errorf("endedAt not set to %v", tt.endedAt)
			}
		})
	}
}
