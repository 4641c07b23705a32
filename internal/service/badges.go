package service

import "certlab_backend/internal/model"

// BadgeDef 一条徽章规则：满足条件即发放，终身只发一次
type BadgeDef struct {
	Code      string
	Name      string
	Icon      string
	Condition func(stats *model.UserGameStats) bool
}

// 徽章规则表。条件只依赖累计状态，顺序即发放检查顺序
var badgeCatalog = []BadgeDef{
	{
		Code: "first_quiz", Name: "初试锋芒", Icon: "🎯",
		Condition: func(s *model.UserGameStats) bool { return s.QuizzesTaken >= 1 },
	},
	{
		Code: "quiz_10", Name: "十卷在手", Icon: "📚",
		Condition: func(s *model.UserGameStats) bool { return s.QuizzesTaken >= 10 },
	},
	{
		Code: "quiz_50", Name: "题海泛舟", Icon: "🌊",
		Condition: func(s *model.UserGameStats) bool { return s.QuizzesTaken >= 50 },
	},
	{
		Code: "perfect_score", Name: "满分时刻", Icon: "💯",
		Condition: func(s *model.UserGameStats) bool { return s.PerfectScores >= 1 },
	},
	{
		Code: "perfect_10", Name: "十全十美", Icon: "🏆",
		Condition: func(s *model.UserGameStats) bool { return s.PerfectScores >= 10 },
	},
	{
		Code: "streak_7", Name: "七日连胜", Icon: "🔥",
		Condition: func(s *model.UserGameStats) bool { return s.CurrentStreak >= 7 },
	},
	{
		Code: "streak_30", Name: "月度恒心", Icon: "🗓️",
		Condition: func(s *model.UserGameStats) bool { return s.CurrentStreak >= 30 },
	},
	{
		Code: "points_1000", Name: "千分里程", Icon: "⭐",
		Condition: func(s *model.UserGameStats) bool { return s.TotalPoints >= 1000 },
	},
	{
		Code: "level_5", Name: "渐入佳境", Icon: "🚀",
		Condition: func(s *model.UserGameStats) bool { return CalculateLevelFromPoints(s.TotalPoints) >= 5 },
	},
	{
		Code: "level_10", Name: "登堂入室", Icon: "👑",
		Condition: func(s *model.UserGameStats) bool { return CalculateLevelFromPoints(s.TotalPoints) >= 10 },
	},
}

// BadgeCatalog 返回全部徽章定义，供成就页展示“未解锁”状态
func BadgeCatalog() []BadgeDef {
	return badgeCatalog
}
