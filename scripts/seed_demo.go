// 演示数据种子脚本
//
// 在空库上创建演示租户、管理员/学员账号和一批示例题目，
// 方便本地起前端联调。已存在演示租户时直接退出，不会重复写入。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"certlab_backend/internal/config"
	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/pkg/database"
	"certlab_backend/pkg/logger"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoTenantName = "CertLab Demo"

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	tenantRepo := repository.NewTenantRepository(db)
	if _, err := tenantRepo.FindByName(demoTenantName); err == nil {
		log.Println("演示租户已存在，跳过种子数据")
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("查询租户失败: %v", err)
	}

	tenant := &model.Tenant{
		Name:      demoTenantName,
		Plan:      model.PlanTeam,
		SeatLimit: 200,
	}
	if err := tenantRepo.Create(tenant); err != nil {
		log.Fatalf("创建演示租户失败: %v", err)
	}

	seedUsers(db, tenant.ID)
	categories := seedCategories(db, tenant.ID)
	seedQuestions(db, tenant.ID, categories)

	log.Printf("完成！租户 ID: %s", tenant.ID)
	log.Println("管理员: admin@certlab.dev / admin123")
	log.Println("学员:   demo@certlab.dev / demo1234")
}

func seedUsers(db *gorm.DB, tenantID string) {
	users := []struct {
		name     string
		email    string
		password string
		role     model.UserRole
		exam     string
	}{
		{"管理员", "admin@certlab.dev", "admin123", model.Admin, ""},
		{"演示学员", "demo@certlab.dev", "demo1234", model.Member, "CompTIA Security+"},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("密码哈希失败: %v", err)
		}
		user := &model.User{
			TenantID:   tenantID,
			Name:       u.name,
			Email:      u.email,
			Password:   string(hashed),
			Role:       u.role,
			TargetExam: u.exam,
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("创建用户 %s 失败: %v", u.email, err)
		}
	}
}

func seedCategories(db *gorm.DB, tenantID string) map[string]string {
	categories := []model.Category{
		{TenantID: tenantID, Code: "networking", Name: "网络基础", Description: "OSI 模型、TCP/IP、路由与交换", ExamWeight: 20, Enabled: true},
		{TenantID: tenantID, Code: "security", Name: "安全", Description: "加密、认证、访问控制与威胁防护", ExamWeight: 25, Enabled: true},
		{TenantID: tenantID, Code: "cloud", Name: "云计算", Description: "虚拟化、容器与云服务模型", ExamWeight: 20, Enabled: true},
		{TenantID: tenantID, Code: "storage", Name: "存储与数据库", Description: "关系型数据库、备份与恢复", ExamWeight: 15, Enabled: true},
		{TenantID: tenantID, Code: "operations", Name: "运维管理", Description: "监控、日志、故障排查与变更管理", ExamWeight: 20, Enabled: true},
	}

	byCode := make(map[string]string, len(categories))
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			log.Fatalf("创建考纲域 %s 失败: %v", categories[i].Code, err)
		}
		byCode[categories[i].Code] = categories[i].ID
	}
	return byCode
}

func seedQuestions(db *gorm.DB, tenantID string, categories map[string]string) {
	questions := []struct {
		category    string
		text        string
		options     []string
		correctIdx  int
		explanation string
		difficulty  int
	}{
		{
			category:    "networking",
			text:        "OSI 模型中负责端到端可靠传输的是哪一层？",
			options:     []string{"网络层", "传输层", "会话层", "数据链路层"},
			correctIdx:  1,
			explanation: "传输层（第四层）通过 TCP 提供端到端的可靠传输，网络层只负责寻址和路由。",
			difficulty:  2,
		},
		{
			category:    "networking",
			text:        "下列哪个地址属于私有 IPv4 地址段？",
			options:     []string{"8.8.8.8", "172.20.1.5", "1.1.1.1", "100.100.100.100"},
			correctIdx:  1,
			explanation: "172.16.0.0/12 是 RFC 1918 定义的私有地址段，172.20.1.5 落在其中。",
			difficulty:  2,
		},
		{
			category:    "networking",
			text:        "交换机根据什么信息转发数据帧？",
			options:     []string{"目的 IP 地址", "目的 MAC 地址", "端口号", "VLAN 标签"},
			correctIdx:  1,
			explanation: "二层交换机维护 MAC 地址表，按目的 MAC 地址转发帧。",
			difficulty:  1,
		},
		{
			category:    "security",
			text:        "TLS 握手阶段使用非对称加密的主要目的是什么？",
			options:     []string{"加密全部应用数据", "协商并安全交换会话密钥", "压缩传输内容", "校验数据完整性"},
			correctIdx:  1,
			explanation: "非对称加密开销大，仅用于交换对称会话密钥，之后的应用数据用对称加密保护。",
			difficulty:  3,
		},
		{
			category:    "security",
			text:        "哪种攻击通过向输入字段注入恶意 SQL 语句获取数据？",
			options:     []string{"XSS", "CSRF", "SQL 注入", "中间人攻击"},
			correctIdx:  2,
			explanation: "SQL 注入利用未参数化的查询拼接执行任意 SQL。使用预编译语句可以防御。",
			difficulty:  1,
		},
		{
			category:    "security",
			text:        "多因素认证（MFA）要求至少组合几类不同的凭证因素？",
			options:     []string{"一类", "两类", "三类", "四类"},
			correctIdx:  1,
			explanation: "MFA 要求至少两类不同因素，例如「你知道的」（密码）加「你拥有的」（手机令牌）。",
			difficulty:  2,
		},
		{
			category:    "cloud",
			text:        "IaaS、PaaS、SaaS 中，用户管理责任最重的是哪种模型？",
			options:     []string{"SaaS", "PaaS", "IaaS", "三者相同"},
			correctIdx:  2,
			explanation: "IaaS 只提供基础设施，操作系统及以上全部由用户自行管理。",
			difficulty:  2,
		},
		{
			category:    "cloud",
			text:        "容器与虚拟机最本质的区别是什么？",
			options:     []string{"容器不支持网络隔离", "容器共享宿主机内核", "虚拟机启动更快", "虚拟机不能运行 Linux"},
			correctIdx:  1,
			explanation: "容器通过命名空间和 cgroups 在共享内核上隔离进程，虚拟机则各自运行完整的客户机内核。",
			difficulty:  3,
		},
		{
			category:    "storage",
			text:        "RAID 5 最少需要几块磁盘？",
			options:     []string{"2", "3", "4", "5"},
			correctIdx:  1,
			explanation: "RAID 5 把奇偶校验分布到所有成员盘上，最少三块磁盘，允许单盘故障。",
			difficulty:  2,
		},
		{
			category:    "storage",
			text:        "数据库事务的 ACID 特性中，I 代表什么？",
			options:     []string{"完整性 Integrity", "隔离性 Isolation", "幂等性 Idempotency", "不可变性 Immutability"},
			correctIdx:  1,
			explanation: "Isolation（隔离性）保证并发事务彼此不可见中间状态。",
			difficulty:  2,
		},
		{
			category:    "operations",
			text:        "SLA 中「四个九」（99.99%）的可用性意味着每年最多允许多长的停机时间？",
			options:     []string{"约 8.8 小时", "约 53 分钟", "约 5.3 分钟", "约 31 秒"},
			correctIdx:  1,
			explanation: "一年约 525600 分钟，0.01% 即约 52.6 分钟。",
			difficulty:  3,
		},
		{
			category:    "operations",
			text:        "变更管理流程中，紧急变更与标准变更的核心区别是什么？",
			options:     []string{"紧急变更不需要记录", "紧急变更可先实施后补审批", "标准变更不需要测试", "两者没有区别"},
			correctIdx:  1,
			explanation: "紧急变更允许先实施、事后补充评审，但仍必须完整记录；标准变更走预审批流程。",
			difficulty:  3,
		},
	}

	for _, q := range questions {
		categoryID, ok := categories[q.category]
		if !ok {
			log.Fatalf("未知考纲域编码: %s", q.category)
		}
		question := &model.Question{
			TenantID:    tenantID,
			CategoryID:  categoryID,
			Text:        q.text,
			Options:     q.options,
			CorrectIdx:  q.correctIdx,
			Explanation: q.explanation,
			Difficulty:  q.difficulty,
			Active:      true,
		}
		if err := db.Create(question).Error; err != nil {
			log.Fatalf("创建题目失败: %v", err)
		}
	}
	log.Printf("已写入 %d 道示例题目", len(questions))
}
