package model

// Trend 取值
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// 优先级取值（技能差距与洞察共用）
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// LearningCurvePoint 学习曲线单日数据点（只包含有作答记录的日期，空档日不补零）
type LearningCurvePoint struct {
	Date          string  `json:"date"` // 2006-01-02
	Score         float64 `json:"score"`
	MovingAverage float64 `json:"movingAverage"` // 近7个有数据日的滑动平均
	TrendLine     float64 `json:"trendLine"`     // 最小二乘趋势线在该点的取值
}

// LearningCurve 学习曲线
type LearningCurve struct {
	Points []LearningCurvePoint `json:"points"`
	Slope  float64              `json:"slope"` // 每日分数变化趋势（分/天）
}

// ConfidenceInterval 置信区间，始终落在 [0,100]
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ExamReadiness 考试准备度预测
type ExamReadiness struct {
	Score                    float64            `json:"score"`      // 0-100
	Confidence               float64            `json:"confidence"` // 0-100，随样本量增长
	ConfidenceInterval       ConfidenceInterval `json:"confidenceInterval"`
	EstimatedPassProbability float64            `json:"estimatedPassProbability"` // 0-100
}

// PerformanceForecast 成绩预测（按时间跨度外推学习曲线趋势）
type PerformanceForecast struct {
	HorizonDays               int                `json:"horizonDays"`
	PredictedScore            float64            `json:"predictedScore"` // 0-100
	ConfidenceInterval        ConfidenceInterval `json:"confidenceInterval"`
	Trend                     string             `json:"trend"`
	RequiredDailyStudyMinutes int                `json:"requiredDailyStudyMinutes"`
}

// StudyEfficiency 学习效率指标
type StudyEfficiency struct {
	AccuracyRate           float64 `json:"accuracyRate"`           // 总正确率（百分比）
	AverageTimePerQuestion float64 `json:"averageTimePerQuestion"` // 秒
	PointsPerHour          float64 `json:"pointsPerHour"`
	LearningVelocity       float64 `json:"learningVelocity"` // 近期每日得分趋势，可为负
	OptimalStudyDuration   int     `json:"optimalStudyDuration"` // 建议单次学习时长（分钟）
	EfficiencyScore        float64 `json:"efficiencyScore"`      // 0-100，正确率权重为主
}

// SkillGap 单个考纲域的掌握度差距
type SkillGap struct {
	CategoryID          string  `json:"categoryId"`
	CategoryName        string  `json:"categoryName"`
	CurrentMastery      float64 `json:"currentMastery"`
	TargetMastery       float64 `json:"targetMastery"`
	Gap                 float64 `json:"gap"`
	Priority            string  `json:"priority"`
	EstimatedStudyHours float64 `json:"estimatedStudyHours"`
}

// BurnoutRisk 倦怠风险评估
type BurnoutRisk struct {
	Score              int      `json:"score"` // 0-100
	RiskLevel          string   `json:"riskLevel"`
	ConsecutiveDays    int      `json:"consecutiveDays"`
	PerformanceDecline bool     `json:"performanceDecline"`
	Recommendations    []string `json:"recommendations"` // 至少一条
}

// HourlyPerformance 按完成时刻（0-23 时）聚合的表现
type HourlyPerformance struct {
	Hour         int     `json:"hour"`
	AverageScore float64 `json:"averageScore"`
	QuizCount    int     `json:"quizCount"`
}

// RetentionPoint 遗忘曲线单日投影
type RetentionPoint struct {
	DayOffset         int     `json:"dayOffset"`
	Date              string  `json:"date"`
	Retention         float64 `json:"retention"` // 0-100，单调不增
	ReviewRecommended bool    `json:"reviewRecommended"`
}

// DailyPoints 按日重算的得分（复用计分规则，用于每日积分图表）
type DailyPoints struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
}

// AnalyticsReport 一次性返回的完整分析报告
type AnalyticsReport struct {
	GeneratedAt       int64                 `json:"generatedAt"` // unix 秒
	QuizCount         int                   `json:"quizCount"`
	HasSufficientData bool                  `json:"hasSufficientData"` // 完成测验数 >= 3
	LearningCurve     LearningCurve         `json:"learningCurve"`
	Readiness         ExamReadiness         `json:"readiness"`
	Forecasts         []PerformanceForecast `json:"forecasts"` // 7/30/90 天
	Efficiency        StudyEfficiency       `json:"efficiency"`
	SkillGaps         []SkillGap            `json:"skillGaps"`
	Burnout           BurnoutRisk           `json:"burnout"`
	PeakTimes         []HourlyPerformance   `json:"peakTimes"`
	Retention         []RetentionPoint      `json:"retention"`
	DailyPoints       []DailyPoints         `json:"dailyPoints"`
	Insights          []Insight             `json:"insights"`
}
