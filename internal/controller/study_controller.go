package controller

import (
	"errors"

	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudyController struct {
	StudyService *service.StudyService
}

func NewStudyController(studyService *service.StudyService) *StudyController {
	return &StudyController{StudyService: studyService}
}

// StartSession godoc
// @Summary 开始学习计时
// @Description 开一个新的学习时段；残留的旧时段会先被结算
// @Tags 学习计时
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.StartSessionRequest true "计时参数"
// @Success 201 {object} util.Response{data=model.StudySession} "创建成功"
// @Failure 400 {object} util.Response "领域不存在"
// @Router /api/study/sessions/start [post]
func (c *StudyController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.StudyService.StartSession(claims.TenantID, claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.BadRequest(ctx, "category not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, session)
}

// EndSession godoc
// @Summary 结束学习计时
// @Description 结束指定时段并结算时长
// @Tags 学习计时
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "时段ID"
// @Success 200 {object} util.Response{data=model.StudySession} "成功"
// @Failure 404 {object} util.Response "时段不存在"
// @Failure 409 {object} util.Response "时段已结束"
// @Router /api/study/sessions/{id}/end [post]
func (c *StudyController) EndSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	session, err := c.StudyService.EndSession(claims.TenantID, claims.UserID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionAlreadyEnded):
			util.Conflict(ctx, "study session already ended")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// GetSessions godoc
// @Summary 学习时段列表
// @Description 已结束时段的分页列表，附带进行中的时段和累计统计
// @Tags 学习计时
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/study/sessions [get]
func (c *StudyController) GetSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParsePositiveInt(ctx.DefaultQuery("page", "1"), 1)
	pageSize := util.ParsePositiveInt(ctx.DefaultQuery("pageSize", "20"), 20)

	sessions, total, err := c.StudyService.ListSessions(claims.TenantID, claims.UserID, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	active, err := c.StudyService.GetActive(claims.TenantID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	summary, err := c.StudyService.Summary(claims.TenantID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"sessions": util.PageResponse{
			List:  sessions,
			Total: total,
			Page:  page,
			Limit: pageSize,
		},
		"active":  active,
		"summary": summary,
	})
}
