package service

import (
	"fmt"
	"sort"

	"certlab_backend/internal/model"
)

var priorityRank = map[string]int{
	model.PriorityHigh:   0,
	model.PriorityMedium: 1,
	model.PriorityLow:    2,
}

// GenerateInsights 把各项分析结果合成为按优先级排序的结论列表。
// 规则固定、无随机性：相同输入必然得到相同输出与顺序
func GenerateInsights(report *model.AnalyticsReport, currentStreak int) []model.Insight {
	var insights []model.Insight
	add := func(kind model.InsightKind, priority, title, message, action string, progress *float64) {
		insights = append(insights, model.Insight{
			Kind:     kind,
			Priority: priority,
			Title:    title,
			Message:  message,
			Action:   action,
			Progress: progress,
		})
	}
	pct := func(v float64) *float64 { return &v }

	if report.Burnout.RiskLevel == model.PriorityHigh {
		add(model.InsightWarning, model.PriorityHigh,
			"倦怠风险偏高",
			report.Burnout.Recommendations[0],
			"安排一天完全休息", nil)
	}

	if len(report.SkillGaps) > 0 {
		gap := report.SkillGaps[0]
		if gap.Priority == model.PriorityHigh {
			add(model.InsightWeakness, model.PriorityHigh,
				fmt.Sprintf("最薄弱领域：%s", gap.CategoryName),
				fmt.Sprintf("当前掌握度 %.0f%%，距目标还差 %.0f 分，预计需要 %.0f 小时针对性练习。", gap.CurrentMastery, gap.Gap, gap.EstimatedStudyHours),
				"优先练习该领域的题目", pct(gap.CurrentMastery))
		}
	}

	trend := ""
	if len(report.Forecasts) > 0 {
		trend = report.Forecasts[0].Trend
	}
	if trend == model.TrendDeclining {
		add(model.InsightRecommendation, model.PriorityHigh,
			"成绩趋势下行",
			fmt.Sprintf("学习曲线斜率为负，建议每天投入约 %d 分钟稳住状态。", report.Forecasts[0].RequiredDailyStudyMinutes),
			"回顾最近的错题", nil)
	}

	if report.Readiness.Score >= float64(PassingScore) {
		add(model.InsightAchievement, model.PriorityHigh,
			"已达到考试准备线",
			fmt.Sprintf("准备度 %.0f%%，预估通过概率 %.0f%%，可以考虑预约正式考试。", report.Readiness.Score, report.Readiness.EstimatedPassProbability),
			"预约考试", pct(report.Readiness.Score))
	} else if report.Readiness.Score >= 60 {
		add(model.InsightRecommendation, model.PriorityMedium,
			"冲刺通过线",
			fmt.Sprintf("准备度 %.0f%%，距通过线还差 %.0f 分，集中补弱可以更快达标。", report.Readiness.Score, float64(PassingScore)-report.Readiness.Score),
			"针对薄弱领域做一次专项测验", pct(report.Readiness.Score))
	}

	if currentStreak >= 7 {
		add(model.InsightAchievement, model.PriorityMedium,
			fmt.Sprintf("连续学习 %d 天", currentStreak),
			"连续性是长期记忆最可靠的盟友，这个习惯值得保持。",
			"", nil)
	}

	if report.Efficiency.AccuracyRate >= 90 {
		add(model.InsightStrength, model.PriorityMedium,
			"正确率出色",
			fmt.Sprintf("累计正确率 %.1f%%，基础非常扎实。", report.Efficiency.AccuracyRate),
			"", pct(report.Efficiency.AccuracyRate))
	}

	if trend == model.TrendImproving {
		add(model.InsightStrength, model.PriorityMedium,
			"成绩稳步提升",
			fmt.Sprintf("学习曲线每天约 +%.1f 分，按当前趋势 7 天后预计达到 %.0f 分。", report.LearningCurve.Slope, report.Forecasts[0].PredictedScore),
			"", nil)
	}

	if report.Burnout.RiskLevel == model.PriorityMedium {
		add(model.InsightWarning, model.PriorityMedium,
			"注意学习节奏",
			report.Burnout.Recommendations[0],
			"", nil)
	}

	for _, p := range report.Retention {
		if p.ReviewRecommended {
			add(model.InsightRecommendation, model.PriorityMedium,
				"安排一次复习",
				fmt.Sprintf("按遗忘曲线，%s 起记忆保持率将跌破 50%%，在那之前复习一次收益最大。", p.Date),
				"复习最近一次测验的内容", nil)
			break
		}
	}

	if len(report.PeakTimes) > 0 && report.PeakTimes[0].QuizCount >= 2 {
		best := report.PeakTimes[0]
		add(model.InsightRecommendation, model.PriorityLow,
			"你的黄金时段",
			fmt.Sprintf("%d 点左右完成的测验平均 %.0f 分，是你表现最好的时间段。", best.Hour, best.AverageScore),
			"把高难度练习安排在这个时段", nil)
	}

	if len(insights) == 0 {
		add(model.InsightRecommendation, model.PriorityLow,
			"继续积累数据",
			"再完成几次测验，就能解锁个性化的学习洞察。",
			"开始一次新测验", nil)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return priorityRank[insights[i].Priority] < priorityRank[insights[j].Priority]
	})
	return insights
}
