package controller

import (
	"errors"

	"certlab_backend/internal/model"
	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// GetCategories godoc
// @Summary 考纲域列表
// @Description 租户内启用的考纲域及各自题量
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CategoryView} "成功"
// @Router /api/categories [get]
func (c *ContentController) GetCategories(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// 管理员连同停用的领域一起看
	enabledOnly := claims.Role != model.Admin
	categories, err := c.ContentService.ListCategories(claims.TenantID, enabledOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// GetCategoryQuestions godoc
// @Summary 领域内的题目
// @Description 学员浏览某领域的启用题目，不含答案与解析
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "领域ID"
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 404 {object} util.Response "领域不存在"
// @Router /api/categories/{id}/questions [get]
func (c *ContentController) GetCategoryQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	categoryID := ctx.Param("id")
	if _, err := c.ContentService.GetCategory(claims.TenantID, categoryID); err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	page := util.ParsePositiveInt(ctx.DefaultQuery("page", "1"), 1)
	pageSize := util.ParsePositiveInt(ctx.DefaultQuery("pageSize", "20"), 20)

	questions, total, err := c.ContentService.ListQuestionsForMember(claims.TenantID, categoryID, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}

// CreateCategory godoc
// @Summary 创建考纲域
// @Description 新建考纲域，code 在租户内唯一（管理员）
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CategoryRequest true "领域信息"
// @Success 201 {object} util.Response{data=model.Category} "创建成功"
// @Failure 400 {object} util.Response "参数错误或 code 重复"
// @Router /api/admin/categories [post]
func (c *ContentController) CreateCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.ContentService.CreateCategory(claims.TenantID, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary 更新考纲域
// @Description 修改领域信息（管理员）
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "领域ID"
// @Param   body body service.CategoryRequest true "领域信息"
// @Success 200 {object} util.Response{data=model.Category} "成功"
// @Failure 404 {object} util.Response "领域不存在"
// @Router /api/admin/categories/{id} [put]
func (c *ContentController) UpdateCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.ContentService.UpdateCategory(claims.TenantID, ctx.Param("id"), &req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除考纲域
// @Description 删除空领域，仍有题目的领域不可删除（管理员）
// @Tags 内容管理
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "领域ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "领域不存在"
// @Failure 409 {object} util.Response "领域内仍有题目"
// @Router /api/admin/categories/{id} [delete]
func (c *ContentController) DeleteCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.ContentService.DeleteCategory(claims.TenantID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
		} else {
			util.Conflict(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// GetQuestions godoc
// @Summary 题目列表
// @Description 管理端题目列表，含答案与停用题目（管理员）
// @Tags 内容管理
// @Produce  json
// @Security BearerAuth
// @Param   categoryId query string false "领域过滤"
// @Param   difficulty query int false "难度过滤 1-5"
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/admin/questions [get]
func (c *ContentController) GetQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParsePositiveInt(ctx.DefaultQuery("page", "1"), 1)
	pageSize := util.ParsePositiveInt(ctx.DefaultQuery("pageSize", "20"), 20)
	difficulty := util.ParsePositiveInt(ctx.Query("difficulty"), 0)

	questions, total, err := c.ContentService.ListQuestions(claims.TenantID, ctx.Query("categoryId"), difficulty, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}

// CreateQuestion godoc
// @Summary 创建题目
// @Description 新建单选题（管理员）
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Failure 400 {object} util.Response "参数错误或答案下标越界"
// @Router /api/admin/questions [post]
func (c *ContentController) CreateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.ContentService.CreateQuestion(claims.TenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.BadRequest(ctx, "category not found")
		case errors.Is(err, util.ErrInvalidAnswer):
			util.BadRequest(ctx, "correct index out of range")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Description 修改题干、选项、答案、解析或难度（管理员）
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Param   body body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [put]
func (c *ContentController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.ContentService.UpdateQuestion(claims.TenantID, ctx.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrCategoryNotFound):
			util.BadRequest(ctx, "category not found")
		case errors.Is(err, util.ErrInvalidAnswer):
			util.BadRequest(ctx, "correct index out of range")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 停用题目
// @Description 题目可能被历史测验引用，删除只做停用（管理员）
// @Tags 内容管理
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [delete]
func (c *ContentController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.ContentService.DeactivateQuestion(claims.TenantID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deactivated": true})
}
