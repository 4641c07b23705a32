package service

import (
	"errors"
	"math/rand"
	"time"

	"certlab_backend/internal/model"
	"certlab_backend/internal/repository"
	"certlab_backend/internal/util"

	"gorm.io/gorm"
)

// 每日轮换一次
const tipRotationHours = 24

// TipService 备考小贴士：登录页和仪表盘展示，到点自动轮换
type TipService struct {
	TipRepo *repository.StudyTipRepository
}

func NewTipService(tipRepo *repository.StudyTipRepository) *TipService {
	return &TipService{TipRepo: tipRepo}
}

func (s *TipService) GetAllTips() ([]*model.StudyTip, error) {
	return s.TipRepo.GetAll()
}

// GetCurrentTip 取当前展示的小贴士。超过轮换周期时从启用列表里
// 随机换一条（排除当前这条），只有一条启用时不轮换
func (s *TipService) GetCurrentTip() (string, error) {
	current, err := s.TipRepo.GetCurrent()
	if err != nil {
		// 没有标记为当前的，把第一条启用的顶上
		enabled, err := s.TipRepo.GetEnabled()
		if err != nil || len(enabled) == 0 {
			return "", err
		}
		s.TipRepo.SetCurrent(enabled[0].ID)
		return enabled[0].Content, nil
	}

	now := time.Now()
	elapsed := now.Sub(current.LastUsedAt)
	enabled, err := s.TipRepo.GetEnabled()

	if err == nil && len(enabled) > 1 && elapsed.Hours() >= tipRotationHours {
		var candidates []*model.StudyTip
		for _, tip := range enabled {
			if tip.ID != current.ID {
				candidates = append(candidates, tip)
			}
		}
		if len(candidates) > 0 {
			next := candidates[rand.Intn(len(candidates))]
			s.TipRepo.SetCurrent(next.ID)
			return next.Content, nil
		}
	}

	return current.Content, nil
}

func (s *TipService) CreateTip(content string) error {
	tip := &model.StudyTip{
		Content:         content,
		IsEnabled:       true,
		IsCurrentlyUsed: false,
	}
	return s.TipRepo.Create(tip)
}

func (s *TipService) UpdateTip(id uint, content string, isEnabled bool) error {
	var tip model.StudyTip
	err := s.TipRepo.DB.First(&tip, id).Error
	if err == gorm.ErrRecordNotFound {
		return util.ErrTipNotFound
	}
	if err != nil {
		return err
	}

	// 禁用当前展示的那条之前，确认还有别的可用
	current, err := s.TipRepo.GetCurrent()
	if err == nil && current.ID == id && !isEnabled {
		enabled, err := s.TipRepo.GetEnabled()
		if err != nil {
			return err
		}
		if len(enabled) <= 1 {
			return errors.New("at least one enabled tip is required")
		}
	}

	tip.Content = content
	tip.IsEnabled = isEnabled
	return s.TipRepo.Update(&tip)
}

func (s *TipService) DeleteTip(id uint) error {
	current, err := s.TipRepo.GetCurrent()
	if err == nil && current.ID == id {
		enabled, err := s.TipRepo.GetEnabled()
		if err != nil {
			return err
		}
		if len(enabled) <= 1 {
			return errors.New("at least one enabled tip is required")
		}
	}

	return s.TipRepo.Delete(id)
}

// SwitchToTip 立即切换到指定小贴士
func (s *TipService) SwitchToTip(id uint) error {
	tips, err := s.TipRepo.GetAll()
	if err != nil {
		return err
	}

	found := false
	for _, tip := range tips {
		if tip.ID == id {
			found = true
			if !tip.IsEnabled {
				return errors.New("tip is not enabled")
			}
			break
		}
	}
	if !found {
		return util.ErrTipNotFound
	}

	return s.TipRepo.SetCurrent(id)
}
