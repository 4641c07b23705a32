package app

import (
	"certlab_backend/internal/config"
	"certlab_backend/internal/controller"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/service"
	"certlab_backend/internal/util"
	"certlab_backend/pkg/database"
	"certlab_backend/pkg/logger"
	"certlab_backend/pkg/monitoring"
	"certlab_backend/pkg/security"
	"certlab_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
	tracerProvider  *sdktrace.TracerProvider
}

type repositories struct {
	user     *repository.UserRepository
	tenant   *repository.TenantRepository
	category *repository.CategoryRepository
	question *repository.QuestionRepository
	quiz     *repository.QuizRepository
	mastery  *repository.MasteryRepository
	progress *repository.ProgressRepository
	stats    *repository.GameStatsRepository
	badge    *repository.BadgeRepository
	session  *repository.StudySessionRepository
	tip      *repository.StudyTipRepository
}

type services struct {
	storage      *service.StorageService
	auth         *service.AuthService
	quiz         *service.QuizService
	analytics    *service.AnalyticsService
	gamification *service.GamificationService
	user         *service.UserService
	study        *service.StudyService
	tip          *service.TipService
	content      *service.ContentService
	admin        *service.AdminService
}

type controllers struct {
	auth         *controller.AuthController
	quiz         *controller.QuizController
	gamification *controller.GamificationController
	analytics    *controller.AnalyticsController
	study        *controller.StudyController
	user         *controller.UserController
	content      *controller.ContentController
	tip          *controller.TipController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 配置热更新入口：原地覆盖配置对象，
// 所有持有该指针的组件立即看到新值
func (a *App) OnConfigReload(newCfg *config.Config) {
	// 运行时标志不来自配置文件，保留当前值
	newCfg.ForceMigrate = a.Config.ForceMigrate
	newCfg.MigrateOnly = a.Config.MigrateOnly
	*a.Config = *newCfg

	for _, callback := range a.configCallbacks {
		callback(a.Config)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		tenant:   repository.NewTenantRepository(db),
		category: repository.NewCategoryRepository(db),
		question: repository.NewQuestionRepository(db),
		quiz:     repository.NewQuizRepository(db),
		mastery:  repository.NewMasteryRepository(db),
		progress: repository.NewProgressRepository(db),
		stats:    repository.NewGameStatsRepository(db),
		badge:    repository.NewBadgeRepository(db),
		session:  repository.NewStudySessionRepository(db),
		tip:      repository.NewStudyTipRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	loc := cfg.AnalyticsLocation()

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.tenant, cfg)
	s.quiz = service.NewQuizService(
		repos.quiz,
		repos.question,
		repos.category,
		repos.mastery,
		repos.progress,
		repos.stats,
		repos.badge,
		loc,
	)
	s.analytics = service.NewAnalyticsService(
		repos.quiz,
		repos.mastery,
		repos.progress,
		repos.stats,
		rdb,
		cfg,
	)
	s.gamification = service.NewGamificationService(repos.stats, repos.badge, rdb)
	s.user = service.NewUserService(repos.user, s.storage)
	s.study = service.NewStudyService(repos.session, repos.category, loc)
	s.tip = service.NewTipService(repos.tip)
	s.content = service.NewContentService(repos.category, repos.question)
	s.admin = service.NewAdminService(repos.user, repos.quiz, repos.question, repos.session)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		quiz:         controller.NewQuizController(s.quiz),
		gamification: controller.NewGamificationController(s.gamification),
		analytics:    controller.NewAnalyticsController(s.analytics),
		study:        controller.NewStudyController(s.study),
		user:         controller.NewUserController(s.user),
		content:      controller.NewContentController(s.content),
		tip:          controller.NewTipController(s.tip),
		admin:        controller.NewAdminController(s.admin),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	// AuthMiddleware 从 gin context 取配置，必须最先注入。
	// 读的是 a.Config 字段，热更新后新请求自动拿到新配置
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// release 模式默认跳过自动迁移，-migrate 强制执行
	runMigrations := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, runMigrations)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("certlab-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 日志级别跟随 server.mode 热更新
	app.RegisterConfigCallback(func(c *config.Config) {
		logger.InitLogger(c)
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis client", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
