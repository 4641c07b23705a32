package service

import (
	"math"
	"sort"

	"certlab_backend/internal/model"
)

// 技能差距的目标掌握度即通过线
const TargetMastery = 85

// ComputeSkillGaps 找出掌握度未达标的考纲域，按差距从大到小排序。
// 差距为 0 的领域不返回；答题量少的领域预估学时上浮
func ComputeSkillGaps(mastery []model.MasteryScore, progress []model.UserProgress) []model.SkillGap {
	answeredByCategory := make(map[string]int, len(progress))
	for i := range progress {
		answeredByCategory[progress[i].CategoryID] = progress[i].QuestionsAnswered
	}

	gaps := make([]model.SkillGap, 0, len(mastery))
	for i := range mastery {
		m := &mastery[i]
		gap := TargetMastery - m.Score
		if gap <= 0 {
			continue
		}

		priority := model.PriorityLow
		switch {
		case gap > 30:
			priority = model.PriorityHigh
		case gap > 15:
			priority = model.PriorityMedium
		}

		// 每 10 分差距约一小时；练习量不足 20 题的领域再加一小时熟悉成本
		hours := math.Ceil(gap / 10)
		if answeredByCategory[m.CategoryID] < 20 {
			hours++
		}

		name := ""
		if m.Category != nil {
			name = m.Category.Name
		}

		gaps = append(gaps, model.SkillGap{
			CategoryID:          m.CategoryID,
			CategoryName:        name,
			CurrentMastery:      m.Score,
			TargetMastery:       TargetMastery,
			Gap:                 gap,
			Priority:            priority,
			EstimatedStudyHours: hours,
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Gap > gaps[j].Gap
	})
	return gaps
}
