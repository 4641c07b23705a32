package app

import (
	"certlab_backend/docs"
	"certlab_backend/internal/middleware"
	"certlab_backend/internal/model"

	"certlab_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerMemberRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 当日备考贴士，登录页也要展示
		public.GET("/tips/current", c.tip.GetCurrentTip)
	}
}

func (a *App) registerMemberRoutes(rg *gin.RouterGroup, c *controllers) {
	// 测验
	rg.POST("/quizzes", c.quiz.StartQuiz)
	rg.GET("/quizzes", c.quiz.GetQuizzes)
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.DELETE("/quizzes/:id", c.quiz.AbandonQuiz)
	rg.POST("/quizzes/:id/answers", c.quiz.AnswerQuestion)
	rg.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)

	// 游戏化
	rg.GET("/gamification/stats", c.gamification.GetStats)
	rg.GET("/gamification/badges", c.gamification.GetBadges)
	rg.GET("/gamification/leaderboard", c.gamification.GetLeaderboard)

	// 学习分析报告
	rg.GET("/analytics/report", c.analytics.GetReport)
	rg.GET("/analytics/learning-curve", c.analytics.GetLearningCurve)
	rg.GET("/analytics/readiness", c.analytics.GetReadiness)
	rg.GET("/analytics/forecast", c.analytics.GetForecast)
	rg.GET("/analytics/efficiency", c.analytics.GetEfficiency)
	rg.GET("/analytics/skill-gaps", c.analytics.GetSkillGaps)
	rg.GET("/analytics/burnout", c.analytics.GetBurnout)
	rg.GET("/analytics/peak-times", c.analytics.GetPeakTimes)
	rg.GET("/analytics/retention", c.analytics.GetRetention)
	rg.GET("/analytics/insights", c.analytics.GetInsights)

	// 学习计时器
	rg.POST("/study/sessions/start", c.study.StartSession)
	rg.POST("/study/sessions/:id/end", c.study.EndSession)
	rg.GET("/study/sessions", c.study.GetSessions)

	// 个人资料
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	// 考纲域与题目(学员端只读，不带答案)
	rg.GET("/categories", c.content.GetCategories)
	rg.GET("/categories/:id/questions", c.content.GetCategoryQuestions)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		// 用户管理
		admin.GET("/users", c.user.GetUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.POST("/users/:id/disable", c.user.DisableUser)
		admin.POST("/users/:id/reset-password", c.user.ResetPassword)

		// 考纲域管理
		admin.POST("/categories", c.content.CreateCategory)
		admin.PUT("/categories/:id", c.content.UpdateCategory)
		admin.DELETE("/categories/:id", c.content.DeleteCategory)

		// 题库管理
		admin.GET("/questions", c.content.GetQuestions)
		admin.POST("/questions", c.content.CreateQuestion)
		admin.PUT("/questions/:id", c.content.UpdateQuestion)
		admin.DELETE("/questions/:id", c.content.DeleteQuestion)

		// 贴士管理
		admin.GET("/tips", c.tip.GetAllTips)
		admin.POST("/tips", c.tip.CreateTip)
		admin.PUT("/tips/:id", c.tip.UpdateTip)
		admin.DELETE("/tips/:id", c.tip.DeleteTip)
		admin.POST("/tips/:id/switch", c.tip.SwitchTip)

		// 租户运营概览
		admin.GET("/stats", c.admin.GetOverview)
	}
}
