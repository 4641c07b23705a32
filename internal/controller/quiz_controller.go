package controller

import (
	"errors"
	"net/http"

	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// StartQuiz godoc
// @Summary 开始测验
// @Description 按所选领域、题量和模式组卷并创建测验
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.StartQuizRequest true "组卷参数"
// @Success 201 {object} util.Response "创建成功"
// @Failure 400 {object} util.Response "参数错误或领域不存在"
// @Failure 404 {object} util.Response "所选领域内没有可用题目"
// @Router /api/quizzes [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.StartQuiz(claims.TenantID, claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.BadRequest(ctx, "category not found")
		case errors.Is(err, util.ErrNoQuestionsAvailable):
			util.Error(ctx, http.StatusNotFound, "no active questions in selected categories")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// GetQuizzes godoc
// @Summary 测验历史
// @Description 当前用户的测验列表，支持分页与只看已完成；inProgress=true 时仅返回可续答的测验
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(10)
// @Param   completed query bool false "只看已完成"
// @Param   inProgress query bool false "只看进行中(续答入口)"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/quizzes [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if ctx.Query("inProgress") == "true" {
		quizzes, err := c.QuizService.ListInProgress(claims.TenantID, claims.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, quizzes)
		return
	}

	page := util.ParsePositiveInt(ctx.DefaultQuery("page", "1"), 1)
	pageSize := util.ParsePositiveInt(ctx.DefaultQuery("pageSize", "10"), 10)
	if pageSize > 100 {
		pageSize = 100
	}
	completedOnly := ctx.Query("completed") == "true"

	quizzes, total, err := c.QuizService.ListQuizzes(claims.TenantID, claims.UserID, completedOnly, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: pageSize,
	})
}

// GetQuiz godoc
// @Summary 测验详情
// @Description 取单个测验及其题目快照，只能访问自己的测验
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.QuizService.GetQuiz(claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// AnswerQuestion godoc
// @Summary 作答一题
// @Description 记录一次作答，每题只能答一次；练习模式立即返回对错与解析
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验ID"
// @Param   body body service.AnswerRequest true "作答内容"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "选项越界"
// @Failure 404 {object} util.Response "测验或题目不存在"
// @Failure 409 {object} util.Response "已交卷或该题已作答"
// @Router /api/quizzes/{id}/answers [post]
func (c *QuizController) AnswerQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.AnswerQuestion(claims.TenantID, claims.UserID, ctx.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizAlreadySubmitted):
			util.Conflict(ctx, "quiz already submitted")
		case errors.Is(err, util.ErrQuestionAnswered):
			util.Conflict(ctx, "question already answered")
		case errors.Is(err, util.ErrInvalidAnswer):
			util.BadRequest(ctx, "selected option out of range")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// SubmitQuiz godoc
// @Summary 交卷
// @Description 评分并结算积分、连续天数、掌握度与徽章；重复提交返回 409
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "已交卷"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.SubmitQuiz(claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizAlreadySubmitted):
			util.Conflict(ctx, "quiz already submitted")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// AbandonQuiz godoc
// @Summary 放弃测验
// @Description 删除一个进行中的测验，已交卷的不可删除
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "已交卷"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) AbandonQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.QuizService.AbandonQuiz(claims.TenantID, claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizAlreadySubmitted):
			util.Conflict(ctx, "quiz already submitted")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
