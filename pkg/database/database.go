package database

import (
	"certlab_backend/internal/config"
	"certlab_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, autoMigrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !autoMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Category{},
		&model.Question{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.MasteryScore{},
		&model.UserProgress{},
		&model.UserGameStats{},
		&model.Badge{},
		&model.StudySession{},
		&model.StudyTip{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认租户（首次启动时创建，保证注册接口有可用租户）
	var tenantCount int64
	db.Model(&model.Tenant{}).Count(&tenantCount)
	defaultTenantID := ""
	if tenantCount == 0 {
		tenant := &model.Tenant{
			Name:      "CertLab",
			Plan:      model.PlanFree,
			SeatLimit: 50,
		}
		db.Create(tenant)
		defaultTenantID = tenant.ID
	}

	// 默认考纲域（仅为首次创建的默认租户插入）
	if defaultTenantID != "" {
		var catCount int64
		db.Model(&model.Category{}).Count(&catCount)
		if catCount == 0 {
			defaultCategories := []model.Category{
				{TenantID: defaultTenantID, Code: "networking", Name: "网络基础", Description: "OSI 模型、TCP/IP、路由与交换", ExamWeight: 20, Enabled: true},
				{TenantID: defaultTenantID, Code: "security", Name: "安全", Description: "加密、认证、访问控制与威胁防护", ExamWeight: 25, Enabled: true},
				{TenantID: defaultTenantID, Code: "cloud", Name: "云计算", Description: "虚拟化、容器与云服务模型", ExamWeight: 20, Enabled: true},
				{TenantID: defaultTenantID, Code: "storage", Name: "存储与数据库", Description: "关系型数据库、备份与恢复", ExamWeight: 15, Enabled: true},
				{TenantID: defaultTenantID, Code: "operations", Name: "运维管理", Description: "监控、日志、故障排查与变更管理", ExamWeight: 20, Enabled: true},
			}
			for _, c := range defaultCategories {
				db.Create(&c)
			}
		}
	}

	// 默认的备考小贴士
	var tipCount int64
	db.Model(&model.StudyTip{}).Count(&tipCount)
	if tipCount == 0 {
		defaultTips := []string{
			"每天 25 分钟的专注练习胜过周末的连续突击。",
			"做错的题目是最好的老师，复盘错题后再继续前进。",
			"Spaced repetition beats cramming: review before you forget.",
			"考前一周把薄弱领域的测验分数刷到 85 分以上。",
		}
		for i, content := range defaultTips {
			tip := &model.StudyTip{
				Content:         content,
				IsEnabled:       true,
				IsCurrentlyUsed: i == 0,
			}
			db.Create(tip)
		}
	}

	return db, nil
}
