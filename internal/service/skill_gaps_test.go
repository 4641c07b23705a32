package service

import (
	"testing"

	"certlab_backend/internal/model"
)

func masteryOf(categoryID string, score float64, quizCount int) model.MasteryScore {
	return model.MasteryScore{
		CategoryID: categoryID,
		Score:      score,
		QuizCount:  quizCount,
		Category:   &model.Category{Name: categoryID},
	}
}

func TestComputeSkillGaps(t *testing.T) {
	mastery := []model.MasteryScore{
		masteryOf("networking", 90, 5), // 已达标，不应出现
		masteryOf("security", 40, 3),   // 差距 45 → high
		masteryOf("cloud", 60, 4),      // 差距 25 → medium
		masteryOf("storage", 75, 2),    // 差距 10 → low
	}
	progress := []model.UserProgress{
		{CategoryID: "security", QuestionsAnswered: 50},
		{CategoryID: "cloud", QuestionsAnswered: 10},
		{CategoryID: "storage", QuestionsAnswered: 30},
	}

	gaps := ComputeSkillGaps(mastery, progress)
	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps, got %d", len(gaps))
	}

	// 降序：security(45) > cloud(25) > storage(10)
	wantOrder := []string{"security", "cloud", "storage"}
	for i, want := range wantOrder {
		if gaps[i].CategoryID != want {
			t.Errorf("gaps[%d] = %s, want %s", i, gaps[i].CategoryID, want)
		}
	}

	if gaps[0].Priority != model.PriorityHigh {
		t.Errorf("gap 45 priority = %s, want high", gaps[0].Priority)
	}
	if gaps[1].Priority != model.PriorityMedium {
		t.Errorf("gap 25 priority = %s, want medium", gaps[1].Priority)
	}
	if gaps[2].Priority != model.PriorityLow {
		t.Errorf("gap 10 priority = %s, want low", gaps[2].Priority)
	}

	// 差距越大预估学时不应更少；练习量少的 cloud 含加时
	if gaps[0].EstimatedStudyHours < gaps[2].EstimatedStudyHours {
		t.Errorf("larger gap estimated fewer hours: %v < %v", gaps[0].EstimatedStudyHours, gaps[2].EstimatedStudyHours)
	}
	if gaps[1].EstimatedStudyHours != 4 { // ceil(25/10)=3 +1 低练习量
		t.Errorf("cloud hours = %v, want 4", gaps[1].EstimatedStudyHours)
	}

	for _, g := range gaps {
		if g.Gap <= 0 {
			t.Errorf("non-positive gap leaked into result: %+v", g)
		}
		if g.TargetMastery != 85 {
			t.Errorf("target mastery = %v, want 85", g.TargetMastery)
		}
	}
}

func TestComputeSkillGapsEmpty(t *testing.T) {
	if gaps := ComputeSkillGaps(nil, nil); len(gaps) != 0 {
		t.Errorf("no mastery data should yield no gaps, got %+v", gaps)
	}

	allStrong := []model.MasteryScore{masteryOf("networking", 85, 5), masteryOf("security", 100, 9)}
	if gaps := ComputeSkillGaps(allStrong, nil); len(gaps) != 0 {
		t.Errorf("all categories at target should yield no gaps, got %+v", gaps)
	}
}
