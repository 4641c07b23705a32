package service

// 等级规则：1 级从 0 分开始，完成第 n 级需要 n*100 分，
// 因此 n+1 级的起点阈值为 100+200+...+n*100 = 100*n*(n+1)/2

// CalculatePointsForLevel 返回 level 级开始时的累计积分阈值
func CalculatePointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return 100 * (level - 1) * level / 2
}

// CalculateLevelFromPoints 返回满足 threshold(L) <= totalPoints 的最大等级，
// 是 CalculatePointsForLevel 的精确逆运算。负数按 0 处理，结果永远 >= 1
func CalculateLevelFromPoints(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	level := 1
	for CalculatePointsForLevel(level+1) <= totalPoints {
		level++
	}
	return level
}

// LevelInfo 等级展示数据。所有读取方统一用它推导，
// 存储中的 level 字段只是展示缓存，这里从 totalPoints 现算
type LevelInfo struct {
	Level           int     `json:"level"`
	TotalPoints     int     `json:"totalPoints"`
	PointsInLevel   int     `json:"pointsInLevel"`   // 当前等级内已获得
	PointsForLevel  int     `json:"pointsForLevel"`  // 升到下一级需要的总量（level*100）
	NextLevelAt     int     `json:"nextLevelAt"`     // 下一级的累计阈值
	ProgressPercent float64 `json:"progressPercent"` // 0-100
}

// SnapshotLevel 由权威积分重算等级进度，绝不读取存储的 level
func SnapshotLevel(totalPoints int) LevelInfo {
	if totalPoints < 0 {
		totalPoints = 0
	}
	level := CalculateLevelFromPoints(totalPoints)
	inLevel := totalPoints - CalculatePointsForLevel(level)
	needed := level * 100

	progress := 0.0
	if needed > 0 {
		progress = float64(inLevel) / float64(needed) * 100
	}

	return LevelInfo{
		Level:           level,
		TotalPoints:     totalPoints,
		PointsInLevel:   inLevel,
		PointsForLevel:  needed,
		NextLevelAt:     CalculatePointsForLevel(level + 1),
		ProgressPercent: progress,
	}
}
