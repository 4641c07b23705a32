package service

import (
	"testing"
	"time"

	"certlab_backend/internal/model"
)

func completedQuiz(total, correct, score int, passing bool) *model.Quiz {
	now := time.Now()
	return &model.Quiz{
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          score,
		IsPassing:      passing,
		StartedAt:      now.Add(-10 * time.Minute),
		CompletedAt:    &now,
	}
}

func TestCalculateQuizPoints(t *testing.T) {
	tests := []struct {
		name string
		quiz *model.Quiz
		want int
	}{
		{"completed, zero correct", completedQuiz(10, 0, 50, false), 10},
		{"five correct, below passing", completedQuiz(10, 5, 50, false), 35},
		{"nine of ten, passing", completedQuiz(10, 9, 90, true), 80},
		{"perfect score stacks everything", completedQuiz(10, 10, 100, true), 135},
		{"incomplete quiz earns nothing", &model.Quiz{TotalQuestions: 10, CorrectAnswers: 10, Score: 100, IsPassing: true}, 0},
		{"nil quiz", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateQuizPoints(tt.quiz); got != tt.want {
				t.Errorf("CalculateQuizPoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

// IsPassing 为假但分数达线时仍应发通过奖励，反之亦然
func TestPassingBonusRedundantSignals(t *testing.T) {
	scoreOnly := completedQuiz(10, 9, 90, false)
	if got := CalculateQuizPoints(scoreOnly); got != 80 {
		t.Errorf("score>=85 with IsPassing=false: got %d, want 80", got)
	}

	flagOnly := completedQuiz(10, 8, 80, true)
	if got := CalculateQuizPoints(flagOnly); got != 75 {
		t.Errorf("IsPassing=true with score<85: got %d, want 75", got)
	}
}
