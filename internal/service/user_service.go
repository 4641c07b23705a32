package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/util"
	"certlab_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 处理个人资料与管理端的用户管理
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

// findInTenant 取租户内的用户，跨租户一律按不存在处理，不泄露其他租户的数据
func (s *UserService) findInTenant(tenantID string, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetProfile(tenantID string, userID uint) (*model.User, error) {
	return s.findInTenant(tenantID, userID)
}

type UpdateProfileRequest struct {
	Name       string     `json:"name" binding:"required"`
	TargetExam string     `json:"targetExam"`
	ExamDate   *time.Time `json:"examDate"`
}

func (s *UserService) UpdateProfile(tenantID string, userID uint, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.findInTenant(tenantID, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.TargetExam = req.TargetExam
	user.ExamDate = req.ExamDate
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar 校验扩展名和 MIME 后保存头像，返回可访问的 URL
func (s *UserService) UpdateAvatar(tenantID string, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.findInTenant(tenantID, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("unsupported avatar extension %q", ext)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, util.MimeImage) && contentType != util.MimeOctetStream {
		return "", fmt.Errorf("unsupported avatar content type %q", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("avatars/%d_%d%s", userID, time.Now().UnixNano(), ext)
	url, err := s.Storage.Upload(context.Background(), filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	user.UpdatedAt = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	logger.Log.Info("avatar updated", zap.Uint("userId", userID), zap.String("url", url))
	return url, nil
}

func (s *UserService) ListUsers(tenantID, keyword string, page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.UserRepo.ListByTenant(tenantID, keyword, page, pageSize)
}

func (s *UserService) GetUser(tenantID string, userID uint) (*model.User, error) {
	return s.findInTenant(tenantID, userID)
}

type AdminUpdateUserRequest struct {
	Name     string         `json:"name" binding:"required"`
	Role     model.UserRole `json:"role" binding:"required,oneof=member admin"`
	Disabled bool           `json:"disabled"`
	Password string         `json:"password"`
}

// AdminUpdateUser 管理员编辑成员：姓名、角色、禁用状态，密码可选
func (s *UserService) AdminUpdateUser(tenantID string, actorID, userID uint, req *AdminUpdateUserRequest) (*model.User, error) {
	// 与 DisableUser 同一条规则：不能经编辑接口禁用自己
	if req.Disabled && actorID == userID {
		return nil, util.ErrPermissionDenied
	}

	user, err := s.findInTenant(tenantID, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Role = req.Role
	user.Disabled = req.Disabled
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DisableUser(tenantID string, actorID, userID uint, disabled bool) error {
	// 管理员不能禁用自己，避免把租户锁死
	if disabled && actorID == userID {
		return util.ErrPermissionDenied
	}

	user, err := s.findInTenant(tenantID, userID)
	if err != nil {
		return err
	}
	if err := s.UserRepo.SetDisabled(user.ID, disabled); err != nil {
		return err
	}

	logger.Log.Info("user disabled state changed",
		zap.Uint("userId", userID),
		zap.Bool("disabled", disabled))
	return nil
}

// ResetPassword 管理员重置成员密码，返回一次性展示的临时密码
func (s *UserService) ResetPassword(tenantID string, userID uint) (string, error) {
	user, err := s.findInTenant(tenantID, userID)
	if err != nil {
		return "", err
	}

	tempPassword := generateTempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user.Password = string(hashed)
	user.UpdatedAt = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return tempPassword, nil
}

// generateTempPassword 生成一次性临时密码
func generateTempPassword() string {
	return "tmp-" + uuid.NewString()[:8]
}
