package model

type InsightKind string

const (
	InsightAchievement    InsightKind = "achievement"
	InsightStrength       InsightKind = "strength"
	InsightWeakness       InsightKind = "weakness"
	InsightRecommendation InsightKind = "recommendation"
	InsightWarning        InsightKind = "warning"
)

// Insight 由分析结果合成的自然语言结论，按优先级排序后取前几条展示。
// 不落库，同样的输入必须生成同样的结果
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Priority string      `json:"priority"` // high | medium | low
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	Progress *float64    `json:"progress,omitempty"` // 0-100
	Action   string      `json:"action,omitempty"`
}
