package controller

import (
	"errors"

	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TipController struct {
	TipService *service.TipService
}

func NewTipController(tipService *service.TipService) *TipController {
	return &TipController{TipService: tipService}
}

// GetCurrentTip godoc
// @Summary 当前小贴士
// @Description 当前展示的备考小贴士，到点自动轮换
// @Tags 小贴士
// @Produce  json
// @Success 200 {object} util.Response "成功"
// @Router /api/tips/current [get]
func (c *TipController) GetCurrentTip(ctx *gin.Context) {
	tip, err := c.TipService.GetCurrentTip()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, gin.H{"content": tip})
}

// GetAllTips godoc
// @Summary 全部小贴士
// @Description 全部小贴士及启用状态（管理员）
// @Tags 小贴士
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.StudyTip} "成功"
// @Router /api/admin/tips [get]
func (c *TipController) GetAllTips(ctx *gin.Context) {
	tips, err := c.TipService.GetAllTips()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, tips)
}

// CreateTip godoc
// @Summary 创建小贴士
// @Description 新建一条备考小贴士（管理员）
// @Tags 小贴士
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body object true "内容"
// @Success 201 {object} util.Response "创建成功"
// @Router /api/admin/tips [post]
func (c *TipController) CreateTip(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required,min=5,max=500"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TipService.CreateTip(req.Content); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"created": true})
}

// UpdateTip godoc
// @Summary 更新小贴士
// @Description 修改内容或启用状态；当前展示的那条不能被禁成最后一条（管理员）
// @Tags 小贴士
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "小贴士ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "小贴士不存在"
// @Router /api/admin/tips/{id} [put]
func (c *TipController) UpdateTip(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid tip id")
		return
	}

	var req struct {
		Content   string `json:"content" binding:"required,min=5,max=500"`
		IsEnabled *bool  `json:"isEnabled" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TipService.UpdateTip(id, req.Content, *req.IsEnabled); err != nil {
		if errors.Is(err, util.ErrTipNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}

// DeleteTip godoc
// @Summary 删除小贴士
// @Description 删除一条小贴士，最后一条启用的不可删除（管理员）
// @Tags 小贴士
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "小贴士ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/tips/{id} [delete]
func (c *TipController) DeleteTip(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid tip id")
		return
	}

	if err := c.TipService.DeleteTip(id); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// SwitchTip godoc
// @Summary 切换小贴士
// @Description 立即切换到指定小贴士（管理员）
// @Tags 小贴士
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "小贴士ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "小贴士不存在"
// @Router /api/admin/tips/{id}/switch [post]
func (c *TipController) SwitchTip(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid tip id")
		return
	}

	if err := c.TipService.SwitchToTip(id); err != nil {
		if errors.Is(err, util.ErrTipNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, gin.H{"switched": true})
}
