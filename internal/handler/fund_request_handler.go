package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/venturebridge/vbs/internal/logic"
	"github.com/venturebridge/vbs/internal/model"
)

// FundRequestHandler 融资请求处理器
type FundRequestHandler struct {
	fundRequestLogic *logic.FundRequestLogic
}

// NewFundRequestHandler 创建融资请求处理器
func NewFundRequestHandler(fundRequestLogic *logic.FundRequestLogic) *FundRequestHandler {
	return &FundRequestHandler{
		fundRequestLogic: fundRequestLogic,
	}
}

// CreateFundRequest 创建融资请求
func (h *FundRequestHandler) CreateFundRequest(c *gin.Context) {
	var req CreateFundRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record := &model.FundRequestModel{
		StartupId:        req.StartupId,
		InvestorId:       req.InvestorId,
		Amount:           req.Amount,
		Currency:         req.Currency,
		FundingType:      model.FundingType(req.FundingType),
		Note:             req.Note,
		EquityPercentage: req.EquityPercentage,
		InterestRate:     req.InterestRate,
		LoanTenureMonths: req.LoanTenureMonths,
	}

	// 调用logic层创建融资请求
	if err := h.fundRequestLogic.CreateFundRequest(record); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "融资请求创建成功", ToFundRequestResponse(record))
}

// GetFundRequest 获取融资请求详情
func (h *FundRequestHandler) GetFundRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求ID")
		return
	}

	record, err := h.fundRequestLogic.GetFundRequest(id)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取融资请求成功", ToFundRequestResponse(record))
}

// GetFundRequests 获取融资请求列表
func (h *FundRequestHandler) GetFundRequests(c *gin.Context) {
	startupId, _ := strconv.ParseInt(c.Query("startup_id"), 10, 64)
	investorId, _ := strconv.ParseInt(c.Query("investor_id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	filter := logic.FundRequestFilter{
		StartupId:  startupId,
		InvestorId: investorId,
		Status:     model.FundRequestStatus(c.Query("status")),
		Page:       page,
		PageSize:   pageSize,
	}

	requests, total, err := h.fundRequestLogic.ListFundRequests(filter)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取融资请求列表成功", GetFundRequestsResponse{
		Requests:   ToFundRequestResponseList(requests),
		Pagination: NewPagination(page, pageSize, total),
	})
}

// ApproveFundRequest 批准融资请求
func (h *FundRequestHandler) ApproveFundRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求ID")
		return
	}

	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.fundRequestLogic.ApproveFundRequest(id, req.ActorId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "融资请求已批准", ToFundRequestResponse(record))
}

// RejectFundRequest 拒绝融资请求
func (h *FundRequestHandler) RejectFundRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求ID")
		return
	}

	var req RejectFundRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.fundRequestLogic.RejectFundRequest(id, req.ActorId, req.Reason)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "融资请求已拒绝", ToFundRequestResponse(record))
}

// CreatePaymentOrder 生成支付网关下单参数
func (h *FundRequestHandler) CreatePaymentOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求ID")
		return
	}

	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.fundRequestLogic.CreatePaymentOrder(id, req.ActorId)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "支付订单创建成功", order)
}

// CompletePayment 确认支付完成
func (h *FundRequestHandler) CompletePayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求ID")
		return
	}

	var req CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.fundRequestLogic.CompletePayment(id, req.ActorId, req.OrderId, req.PaymentId, req.Signature)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "支付确认成功，融资完成", ToFundRequestResponse(record))
}
