package controller

import (
	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamificationService *service.GamificationService
}

func NewGamificationController(gamificationService *service.GamificationService) *GamificationController {
	return &GamificationController{GamificationService: gamificationService}
}

// GetStats godoc
// @Summary 游戏化状态
// @Description 当前用户的积分、等级、连续天数与徽章数，等级由积分现算
// @Tags 游戏化
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.GameStatsView} "成功"
// @Router /api/gamification/stats [get]
func (c *GamificationController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.GamificationService.GetStats(claims.TenantID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// GetBadges godoc
// @Summary 徽章墙
// @Description 全部徽章目录及当前用户的获得情况
// @Tags 游戏化
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.BadgeStatus} "成功"
// @Router /api/gamification/badges [get]
func (c *GamificationController) GetBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.GamificationService.ListBadges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badges)
}

// GetLeaderboard godoc
// @Summary 排行榜
// @Description 租户内按总积分排序的前 N 名
// @Tags 游戏化
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "条数" default(10)
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry} "成功"
// @Router /api/gamification/leaderboard [get]
func (c *GamificationController) GetLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := util.ParsePositiveInt(ctx.DefaultQuery("limit", "10"), 10)
	entries, err := c.GamificationService.Leaderboard(claims.TenantID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
