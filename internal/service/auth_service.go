package service

import (
	"certlab_backend/internal/config"
	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	TenantRepo *repository.TenantRepository
	Cfg        *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tenantRepo *repository.TenantRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:   userRepo,
		TenantRepo: tenantRepo,
		Cfg:        cfg,
	}
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	TenantID   string `json:"tenantId"`
	TargetExam string `json:"targetExam"`
}

// Register 注册用户。未指定租户时落入默认租户；
// 注册受租户席位上限约束
func (s *AuthService) Register(req *RegisterRequest) (*model.User, error) {
	var tenant *model.Tenant
	var err error
	if req.TenantID != "" {
		tenant, err = s.TenantRepo.FindByID(req.TenantID)
	} else {
		tenant, err = s.TenantRepo.FindDefault()
	}
	if err != nil {
		return nil, util.ErrTenantNotFound
	}
	if tenant.Disabled {
		return nil, util.ErrTenantNotFound
	}

	count, err := s.UserRepo.CountByTenant(tenant.ID)
	if err != nil {
		return nil, err
	}
	if tenant.SeatLimit > 0 && count >= int64(tenant.SeatLimit) {
		return nil, util.ErrTenantSeatLimit
	}

	_, err = s.UserRepo.FindByEmail(tenant.ID, req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		TenantID:   tenant.ID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Role:       model.Member,
		TargetExam: req.TargetExam,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验口令并签发 JWT，签发后刷新最近登录时间
func (s *AuthService) Login(tenantID, email, password string) (string, *model.User, error) {
	if tenantID == "" {
		tenant, err := s.TenantRepo.FindDefault()
		if err != nil {
			return "", nil, util.ErrInvalidCredentials
		}
		tenantID = tenant.ID
	}

	user, err := s.UserRepo.FindByEmail(tenantID, email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)
	return token, user, nil
}
