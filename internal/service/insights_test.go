package service

import (
	"reflect"
	"testing"

	"certlab_backend/internal/model"
)

func sampleReport() *model.AnalyticsReport {
	return &model.AnalyticsReport{
		QuizCount:         10,
		HasSufficientData: true,
		LearningCurve:     model.LearningCurve{Slope: 1.2},
		Readiness: model.ExamReadiness{
			Score:                    88,
			Confidence:               80,
			EstimatedPassProbability: 64,
		},
		Forecasts: []model.PerformanceForecast{
			{HorizonDays: 7, PredictedScore: 92, Trend: model.TrendImproving, RequiredDailyStudyMinutes: 30},
		},
		Efficiency: model.StudyEfficiency{AccuracyRate: 91.5},
		SkillGaps: []model.SkillGap{
			{CategoryID: "security", CategoryName: "安全", CurrentMastery: 40, TargetMastery: 85, Gap: 45, Priority: model.PriorityHigh, EstimatedStudyHours: 5},
		},
		Burnout: model.BurnoutRisk{
			Score: 75, RiskLevel: model.PriorityHigh,
			Recommendations: []string{"已连续学习 9 天，安排一天完全休息有助于巩固记忆。"},
		},
		PeakTimes: []model.HourlyPerformance{{Hour: 9, AverageScore: 90, QuizCount: 4}},
		Retention: []model.RetentionPoint{
			{DayOffset: 0, Date: "2025-03-10", Retention: 100},
			{DayOffset: 7, Date: "2025-03-17", Retention: 49.4, ReviewRecommended: true},
		},
	}
}

func TestGenerateInsightsRanking(t *testing.T) {
	insights := GenerateInsights(sampleReport(), 9)
	if len(insights) == 0 {
		t.Fatal("rich report should produce insights")
	}

	// 高优先级必须排在中低优先级之前
	lastRank := -1
	for i, ins := range insights {
		rank := priorityRank[ins.Priority]
		if rank < lastRank {
			t.Errorf("insight %d (%s/%s) ranked after lower priority", i, ins.Title, ins.Priority)
		}
		lastRank = rank
	}

	// 倦怠警告、薄弱领域、备考达标都应在场
	kinds := map[model.InsightKind]bool{}
	for _, ins := range insights {
		kinds[ins.Kind] = true
	}
	for _, want := range []model.InsightKind{model.InsightWarning, model.InsightWeakness, model.InsightAchievement, model.InsightStrength} {
		if !kinds[want] {
			t.Errorf("expected an insight of kind %s", want)
		}
	}
}

func TestGenerateInsightsDeterminism(t *testing.T) {
	a := GenerateInsights(sampleReport(), 9)
	b := GenerateInsights(sampleReport(), 9)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different insight lists")
	}
}

func TestGenerateInsightsSparseData(t *testing.T) {
	report := &model.AnalyticsReport{
		Burnout: model.BurnoutRisk{RiskLevel: model.PriorityLow, Recommendations: []string{"保持规律的学习节奏。"}},
	}
	insights := GenerateInsights(report, 0)
	if len(insights) != 1 {
		t.Fatalf("sparse report should yield exactly the fallback insight, got %d", len(insights))
	}
	if insights[0].Kind != model.InsightRecommendation || insights[0].Priority != model.PriorityLow {
		t.Errorf("fallback insight = %+v", insights[0])
	}
}
