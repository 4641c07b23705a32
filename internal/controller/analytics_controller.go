package controller

import (
	"certlab_backend/internal/model"
	"certlab_backend/internal/service"
	"certlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// report 取当前用户的完整报告，出错时已写响应并返回 nil
func (c *AnalyticsController) report(ctx *gin.Context) *model.AnalyticsReport {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil
	}

	report, err := c.AnalyticsService.Report(claims.TenantID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return nil
	}
	return report
}

// GetReport godoc
// @Summary 完整分析报告
// @Description 学习曲线、准备度、预测、效率、差距、倦怠、保持率与洞察的聚合报告，带缓存
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.AnalyticsReport} "成功"
// @Router /api/analytics/report [get]
func (c *AnalyticsController) GetReport(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report)
	}
}

// GetLearningCurve godoc
// @Summary 学习曲线
// @Description 按日聚合的分数序列、7日滑动平均与趋势线
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.LearningCurve} "成功"
// @Router /api/analytics/learning-curve [get]
func (c *AnalyticsController) GetLearningCurve(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.LearningCurve)
	}
}

// GetReadiness godoc
// @Summary 考试准备度
// @Description 基于近期成绩与掌握度的准备度评分、置信区间与通过概率
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ExamReadiness} "成功"
// @Router /api/analytics/readiness [get]
func (c *AnalyticsController) GetReadiness(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.Readiness)
	}
}

// GetForecast godoc
// @Summary 成绩预测
// @Description 7/30/90 天的分数外推与建议学习时长
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.PerformanceForecast} "成功"
// @Router /api/analytics/forecast [get]
func (c *AnalyticsController) GetForecast(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.Forecasts)
	}
}

// GetEfficiency godoc
// @Summary 学习效率
// @Description 正确率、答题速度、积分效率与建议单次学习时长
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.StudyEfficiency} "成功"
// @Router /api/analytics/efficiency [get]
func (c *AnalyticsController) GetEfficiency(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.Efficiency)
	}
}

// GetSkillGaps godoc
// @Summary 技能差距
// @Description 各考纲域距目标掌握度的差距、优先级与预估补齐时长
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillGap} "成功"
// @Router /api/analytics/skill-gaps [get]
func (c *AnalyticsController) GetSkillGaps(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.SkillGaps)
	}
}

// GetBurnout godoc
// @Summary 倦怠风险
// @Description 连续学习强度与成绩下滑信号的风险评估和调整建议
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.BurnoutRisk} "成功"
// @Router /api/analytics/burnout [get]
func (c *AnalyticsController) GetBurnout(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.Burnout)
	}
}

// GetPeakTimes godoc
// @Summary 最佳时段
// @Description 按完成时刻聚合的平均分，找出表现最好的小时段
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.HourlyPerformance} "成功"
// @Router /api/analytics/peak-times [get]
func (c *AnalyticsController) GetPeakTimes(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.PeakTimes)
	}
}

// GetRetention godoc
// @Summary 记忆保持曲线
// @Description 自最近一次学习起的遗忘曲线投影与复习建议
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.RetentionPoint} "成功"
// @Router /api/analytics/retention [get]
func (c *AnalyticsController) GetRetention(ctx *gin.Context) {
	if report := c.report(ctx); report != nil {
		util.Success(ctx, report.Retention)
	}
}

// GetInsights godoc
// @Summary 学习洞察
// @Description 由分析结果合成的结论列表，按优先级排序
// @Tags 分析
// @Produce  json
// @Security BearerAuth
// @Param   limit query int false "最多返回条数"
// @Success 200 {object} util.Response{data=[]model.Insight} "成功"
// @Router /api/analytics/insights [get]
func (c *AnalyticsController) GetInsights(ctx *gin.Context) {
	report := c.report(ctx)
	if report == nil {
		return
	}

	insights := report.Insights
	if limit := util.ParsePositiveInt(ctx.Query("limit"), 0); limit > 0 && limit < len(insights) {
		insights = insights[:limit]
	}
	util.Success(ctx, insights)
}
