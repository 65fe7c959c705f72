package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/venturebridge/vbs/internal/logic"
)

// AnalyticsHandler 治理与统计分析处理器
type AnalyticsHandler struct {
	analyticsLogic *logic.AnalyticsLogic
}

// NewAnalyticsHandler 创建统计分析处理器
func NewAnalyticsHandler(analyticsLogic *logic.AnalyticsLogic) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsLogic: analyticsLogic,
	}
}

// GetStartupFunding 获取创业方融资统计（含投资集中度）
func (h *AnalyticsHandler) GetStartupFunding(c *gin.Context) {
	startupId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	stats, err := h.analyticsLogic.GetStartupFundingStats(startupId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取融资统计成功", stats)
}

// GetInvestorPortfolio 获取投资方投资统计
func (h *AnalyticsHandler) GetInvestorPortfolio(c *gin.Context) {
	investorId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	stats, err := h.analyticsLogic.GetInvestorPortfolioStats(investorId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取投资统计成功", stats)
}
