package controller

import (
	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// GetOverview godoc
// @Summary 租户运营概览
// @Description 用户数、活跃数、题量、测验完成情况与学习总时长（管理员）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TenantOverview} "成功"
// @Router /api/admin/stats [get]
func (c *AdminController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.AdminService.Overview(claims.TenantID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}
