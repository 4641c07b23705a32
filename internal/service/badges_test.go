package service

import (
	"testing"

	"certlab_backend/internal/model"
)

func earnedCodes(stats *model.UserGameStats) map[string]bool {
	codes := make(map[string]bool)
	for _, def := range badgeCatalog {
		if def.Condition(stats) {
			codes[def.Code] = true
		}
	}
	return codes
}

func TestBadgeCatalogConditions(t *testing.T) {
	fresh := &model.UserGameStats{}
	if len(earnedCodes(fresh)) != 0 {
		t.Errorf("untouched stats should earn nothing, got %v", earnedCodes(fresh))
	}

	firstQuiz := &model.UserGameStats{QuizzesTaken: 1, TotalPoints: 35}
	codes := earnedCodes(firstQuiz)
	if !codes["first_quiz"] {
		t.Error("first quiz badge not earned after one quiz")
	}
	if codes["quiz_10"] || codes["perfect_score"] || codes["streak_7"] {
		t.Errorf("unexpected badges after one quiz: %v", codes)
	}

	grinder := &model.UserGameStats{
		QuizzesTaken:  55,
		PerfectScores: 12,
		CurrentStreak: 31,
		TotalPoints:   4600, // 等级 10 的阈值是 4500
	}
	codes = earnedCodes(grinder)
	for _, want := range []string{"first_quiz", "quiz_10", "quiz_50", "perfect_score", "perfect_10", "streak_7", "streak_30", "points_1000", "level_5", "level_10"} {
		if !codes[want] {
			t.Errorf("veteran stats missing badge %s", want)
		}
	}
}

// 等级徽章必须由积分现算，不看存储的 Level 字段
func TestLevelBadgeIgnoresStoredLevel(t *testing.T) {
	drifted := &model.UserGameStats{TotalPoints: 1100, Level: 1} // 1100 分实际是 5 级
	codes := earnedCodes(drifted)
	if !codes["level_5"] {
		t.Error("level_5 badge should be derived from points, not the stored level")
	}
}
