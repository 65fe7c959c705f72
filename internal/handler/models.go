package handler

import (
	"time"

	"github.com/venturebridge/vbs/internal/model"
)

// 融资请求相关请求/响应模型

// CreateFundRequestRequest 创建融资请求
type CreateFundRequestRequest struct {
	StartupId        int64    `json:"startup_id" binding:"required"`
	InvestorId       int64    `json:"investor_id" binding:"required"`
	Amount           float64  `json:"amount" binding:"required"`
	Currency         string   `json:"currency"`
	FundingType      string   `json:"funding_type" binding:"required"`
	Note             string   `json:"note"`
	EquityPercentage *float64 `json:"equity_percentage"`
	InterestRate     *float64 `json:"interest_rate"`
	LoanTenureMonths *int     `json:"loan_tenure_months"`
}

// ActorRequest 携带操作者身份的请求体
type ActorRequest struct {
	ActorId int64 `json:"actor_id" binding:"required"`
}

// RejectFundRequestRequest 拒绝融资请求
type RejectFundRequestRequest struct {
	ActorId int64  `json:"actor_id" binding:"required"`
	Reason  string `json:"reason"`
}

// CompletePaymentRequest 支付完成回调
type CompletePaymentRequest struct {
	ActorId   int64  `json:"actor_id" binding:"required"`
	OrderId   string `json:"order_id" binding:"required"`
	PaymentId string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// FundRequestResponse 融资请求响应模型
type FundRequestResponse struct {
	Id               int64      `json:"id"`
	StartupId        int64      `json:"startupId"`
	InvestorId       int64      `json:"investorId"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	FundingType      string     `json:"fundingType"`
	Note             string     `json:"note,omitempty"`
	EquityPercentage *float64   `json:"equityPercentage,omitempty"`
	InterestRate     *float64   `json:"interestRate,omitempty"`
	LoanTenureMonths *int       `json:"loanTenureMonths,omitempty"`
	Status           string     `json:"status"`
	RejectionReason  string     `json:"rejectionReason,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	RejectedAt       *time.Time `json:"rejectedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	PaymentOrderId   string     `json:"paymentOrderId,omitempty"`
	PaymentId        string     `json:"paymentId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ToFundRequestResponse 模型转响应
func ToFundRequestResponse(req *model.FundRequestModel) FundRequestResponse {
	return FundRequestResponse{
		Id:               req.Id,
		StartupId:        req.StartupId,
		InvestorId:       req.InvestorId,
		Amount:           req.Amount,
		Currency:         req.Currency,
		FundingType:      string(req.FundingType),
		Note:             req.Note,
		EquityPercentage: req.EquityPercentage,
		InterestRate:     req.InterestRate,
		LoanTenureMonths: req.LoanTenureMonths,
		Status:           string(req.Status),
		RejectionReason:  req.RejectionReason,
		ApprovedAt:       req.ApprovedAt,
		RejectedAt:       req.RejectedAt,
		CompletedAt:      req.CompletedAt,
		PaymentOrderId:   req.PaymentOrderId,
		PaymentId:        req.PaymentId,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

// ToFundRequestResponseList 模型列表转响应列表
func ToFundRequestResponseList(requests []model.FundRequestModel) []FundRequestResponse {
	responses := make([]FundRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, ToFundRequestResponse(&requests[i]))
	}
	return responses
}

// GetFundRequestsResponse 列表响应
type GetFundRequestsResponse struct {
	Requests   []FundRequestResponse `json:"requests"`
	Pagination Pagination            `json:"pagination"`
}

// 分析快照列表项

// AnalysisSummaryResponse 快照摘要
type AnalysisSummaryResponse struct {
	Id         int64     `json:"id"`
	StartupId  int64     `json:"startupId"`
	TotalScore int       `json:"totalScore"`
	Verdict    string    `json:"verdict"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToAnalysisSummaryList 模型列表转摘要列表
func ToAnalysisSummaryList(analyses []model.AnalysisModel) []AnalysisSummaryResponse {
	summaries := make([]AnalysisSummaryResponse, 0, len(analyses))
	for _, a := range analyses {
		summaries = append(summaries, AnalysisSummaryResponse{
			Id:         a.Id,
			StartupId:  a.StartupId,
			TotalScore: a.TotalScore,
			Verdict:    a.Verdict,
			CreatedAt:  a.CreatedAt,
		})
	}
	return summaries
}

// GetAnalysesResponse 快照列表响应
type GetAnalysesResponse struct {
	Analyses   []AnalysisSummaryResponse `json:"analyses"`
	Pagination Pagination                `json:"pagination"`
}
