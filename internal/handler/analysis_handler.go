package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/venturebridge/vbs/internal/logic"
	"github.com/venturebridge/vbs/internal/scoring"
)

// AnalysisHandler 可行性分析处理器
type AnalysisHandler struct {
	analysisLogic *logic.AnalysisLogic
}

// NewAnalysisHandler 创建可行性分析处理器
func NewAnalysisHandler(analysisLogic *logic.AnalysisLogic) *AnalysisHandler {
	return &AnalysisHandler{
		analysisLogic: analysisLogic,
	}
}

// SubmitAnalysisRequest 提交分析请求
type SubmitAnalysisRequest struct {
	StartupId int64           `json:"startup_id" binding:"required"`
	Metrics   scoring.Metrics `json:"metrics" binding:"required"`
}

// SubmitAnalysis 提交指标并执行评分
func (h *AnalysisHandler) SubmitAnalysis(c *gin.Context) {
	var req SubmitAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.analysisLogic.RunAnalysis(req.StartupId, req.Metrics)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "可行性分析完成", report)
}

// GetAnalysis 获取单条分析快照
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的分析ID")
		return
	}

	report, err := h.analysisLogic.GetAnalysis(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取分析快照成功", report)
}

// GetStartupAnalyses 获取创业方的历史分析快照
func (h *AnalysisHandler) GetStartupAnalyses(c *gin.Context) {
	startupId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	analyses, total, err := h.analysisLogic.ListStartupAnalyses(startupId, page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取分析历史成功", GetAnalysesResponse{
		Analyses:   ToAnalysisSummaryList(analyses),
		Pagination: NewPagination(page, pageSize, total),
	})
}
