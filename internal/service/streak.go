package service

import (
	"time"

	"certlab_backend/internal/util"
)

// 掌握度 EWMA 平滑系数：新观测占三成，历史占七成
const masteryAlpha = 0.3

// dateKey 按配置时区截断到日历日。所有按日分桶统一经过这里，
// 保证分桶结果与进程本地时区无关
func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(util.DateFormat)
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// AdvanceStreak 计算一次学习事件之后的连续天数。
// 同一天内重复学习不加不减；昨天学过则 +1；更早或从未学过则重置为 1
func AdvanceStreak(current, longest int, lastStudy *time.Time, now time.Time, loc *time.Location) (int, int) {
	newCurrent := 1
	if lastStudy != nil {
		last := truncateToDay(*lastStudy, loc)
		today := truncateToDay(now, loc)
		switch {
		case last.Equal(today):
			newCurrent = current
			if newCurrent < 1 {
				newCurrent = 1
			}
		case last.Equal(today.AddDate(0, 0, -1)):
			newCurrent = current + 1
		}
	}

	newLongest := longest
	if newCurrent > newLongest {
		newLongest = newCurrent
	}
	return newCurrent, newLongest
}

// UpdateMasteryScore 用一次测验的领域正确率更新掌握度。
// 首次观测直接取原始值，之后按 EWMA 平滑，结果始终落在 [0,100]
func UpdateMasteryScore(old float64, quizCount int, observed float64) float64 {
	if observed < 0 {
		observed = 0
	}
	if observed > 100 {
		observed = 100
	}

	if quizCount <= 0 {
		return observed
	}

	updated := old + masteryAlpha*(observed-old)
	if updated < 0 {
		updated = 0
	}
	if updated > 100 {
		updated = 100
	}
	return updated
}
