package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/venturebridge/vbs/internal/logger"
	"github.com/venturebridge/vbs/internal/model"
	"github.com/venturebridge/vbs/internal/payment"
)

// FundRequestLogic 融资请求业务逻辑
type FundRequestLogic struct {
	users    UserDirectory
	store    FundRequestStore
	verifier *payment.Verifier
	sink     MessageSink // 可为 nil
}

// NewFundRequestLogic 创建融资请求业务逻辑
func NewFundRequestLogic(users UserDirectory, store FundRequestStore, verifier *payment.Verifier, sink MessageSink) *FundRequestLogic {
	return &FundRequestLogic{
		users:    users,
		store:    store,
		verifier: verifier,
		sink:     sink,
	}
}

// CreateFundRequest 创建融资请求
//
// 仅允许创业方向投资方发起；融资类型相关字段按类型校验并归一化，
// 不适用的字段一律置空。
func (l *FundRequestLogic) CreateFundRequest(req *model.FundRequestModel) error {
	if err := l.validateParties(req.StartupId, req.InvestorId); err != nil {
		return err
	}
	if err := validateFundRequest(req); err != nil {
		return err
	}

	req.Status = model.FundRequestStatusPending
	if req.Currency == "" {
		req.Currency = "INR"
	}

	if err := l.store.Create(req); err != nil {
		return fmt.Errorf("创建融资请求失败: %w", err)
	}

	// 消息回显尽力而为，失败不回滚融资请求
	if l.sink != nil {
		content := fmt.Sprintf("收到一笔融资请求: %s %.2f（%s）", req.Currency, req.Amount, req.FundingType)
		l.sink.Publish(req.StartupId, req.InvestorId, content)
	}

	return nil
}

// GetFundRequest 获取融资请求详情
func (l *FundRequestLogic) GetFundRequest(id int64) (*model.FundRequestModel, error) {
	return l.store.FindById(id)
}

// ListFundRequests 获取融资请求列表
func (l *FundRequestLogic) ListFundRequests(filter FundRequestFilter) ([]model.FundRequestModel, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	return l.store.List(filter)
}

// ApproveFundRequest 批准融资请求，pending -> approved
//
// 只有被指向的投资方可以操作，且仅当当前状态为 pending 时生效。
func (l *FundRequestLogic) ApproveFundRequest(id, actorId int64) (*model.FundRequestModel, error) {
	req, err := l.store.FindById(id)
	if err != nil {
		return nil, err
	}
	if req.InvestorId != actorId {
		return nil, &AuthorizationError{Reason: "只有被指向的投资方可以批准该请求"}
	}
	if req.Status != model.FundRequestStatusPending {
		return nil, &InvalidStateTransitionError{
			Action:   "approve",
			Current:  req.Status,
			Expected: model.FundRequestStatusPending,
		}
	}

	now := time.Now()
	ok, err := l.store.UpdateIfStatus(id, model.FundRequestStatusPending, map[string]interface{}{
		"status":      model.FundRequestStatusApproved,
		"approved_at": &now,
	})
	if err != nil {
		return nil, fmt.Errorf("批准融资请求失败: %w", err)
	}
	if !ok {
		// 条件更新未命中，说明状态已被并发流转
		return nil, l.staleTransition(id, "approve", model.FundRequestStatusPending)
	}

	return l.store.FindById(id)
}

// RejectFundRequest 拒绝融资请求，pending -> rejected
func (l *FundRequestLogic) RejectFundRequest(id, actorId int64, reason string) (*model.FundRequestModel, error) {
	req, err := l.store.FindById(id)
	if err != nil {
		return nil, err
	}
	if req.InvestorId != actorId {
		return nil, &AuthorizationError{Reason: "只有被指向的投资方可以拒绝该请求"}
	}
	if req.Status != model.FundRequestStatusPending {
		return nil, &InvalidStateTransitionError{
			Action:   "reject",
			Current:  req.Status,
			Expected: model.FundRequestStatusPending,
		}
	}

	now := time.Now()
	ok, err := l.store.UpdateIfStatus(id, model.FundRequestStatusPending, map[string]interface{}{
		"status":           model.FundRequestStatusRejected,
		"rejected_at":      &now,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, fmt.Errorf("拒绝融资请求失败: %w", err)
	}
	if !ok {
		return nil, l.staleTransition(id, "reject", model.FundRequestStatusPending)
	}

	return l.store.FindById(id)
}

// CreatePaymentOrder 为已批准的请求生成网关下单参数
//
// 下单金额转换为最小货币单位，融资请求金额本身保持主币种单位。
func (l *FundRequestLogic) CreatePaymentOrder(id, actorId int64) (*payment.Order, error) {
	req, err := l.store.FindById(id)
	if err != nil {
		return nil, err
	}
	if req.InvestorId != actorId {
		return nil, &AuthorizationError{Reason: "只有批准方可以发起支付"}
	}
	if req.Status != model.FundRequestStatusApproved {
		return nil, &InvalidStateTransitionError{
			Action:   "create_order",
			Current:  req.Status,
			Expected: model.FundRequestStatusApproved,
		}
	}

	order := payment.NewOrder(req.Amount, req.Currency)
	return &order, nil
}

// CompletePayment 支付完成，approved -> completed
//
// 先校验支付签名，签名不符直接失败且记录保持原状态；校验通过后
// 以条件更新写入支付凭证与完成时间。
func (l *FundRequestLogic) CompletePayment(id, actorId int64, orderId, paymentId, signature string) (*model.FundRequestModel, error) {
	req, err := l.store.FindById(id)
	if err != nil {
		return nil, err
	}
	if req.InvestorId != actorId {
		return nil, &AuthorizationError{Reason: "只有批准方可以确认支付"}
	}
	if req.Status != model.FundRequestStatusApproved {
		return nil, &InvalidStateTransitionError{
			Action:   "complete",
			Current:  req.Status,
			Expected: model.FundRequestStatusApproved,
		}
	}

	if orderId == "" || paymentId == "" || signature == "" {
		return nil, &ValidationError{Field: "payment", Reason: "支付凭证不完整"}
	}
	if !l.verifier.Verify(orderId, paymentId, signature) {
		logger.Warn("Payment signature mismatch for fund request %d, order %s", id, orderId)
		return nil, ErrPaymentValidationFailed
	}

	now := time.Now()
	ok, err := l.store.UpdateIfStatus(id, model.FundRequestStatusApproved, map[string]interface{}{
		"status":            model.FundRequestStatusCompleted,
		"completed_at":      &now,
		"payment_order_id":  orderId,
		"payment_id":        paymentId,
		"payment_signature": signature,
	})
	if err != nil {
		return nil, fmt.Errorf("确认支付失败: %w", err)
	}
	if !ok {
		return nil, l.staleTransition(id, "complete", model.FundRequestStatusApproved)
	}

	logger.Info("Fund request %d completed, payment %s", id, paymentId)
	return l.store.FindById(id)
}

// validateParties 校验双方角色
func (l *FundRequestLogic) validateParties(startupId, investorId int64) error {
	startup, err := l.users.FindUser(startupId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ValidationError{Field: "startup_id", Reason: "用户不存在"}
		}
		return err
	}
	if startup.Role != model.UserRoleStartup {
		return &AuthorizationError{Reason: "融资请求只能由创业方发起"}
	}

	investor, err := l.users.FindUser(investorId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &ValidationError{Field: "investor_id", Reason: "用户不存在"}
		}
		return err
	}
	if investor.Role != model.UserRoleInvestor {
		return &AuthorizationError{Reason: "融资请求只能指向投资方"}
	}

	return nil
}

// validateFundRequest 校验融资信息并按类型归一化可选字段
func validateFundRequest(req *model.FundRequestModel) error {
	if req.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "必须大于0"}
	}
	if !req.FundingType.IsValid() {
		return &ValidationError{Field: "funding_type", Reason: "不支持的融资类型"}
	}

	switch req.FundingType {
	case model.FundingTypeEquity:
		if req.EquityPercentage == nil || *req.EquityPercentage <= 0 || *req.EquityPercentage > 100 {
			return &ValidationError{Field: "equity_percentage", Reason: "股权融资必须提供0-100之间的出让比例"}
		}
		req.InterestRate = nil
		req.LoanTenureMonths = nil
	case model.FundingTypeDebt:
		if req.InterestRate == nil || *req.InterestRate <= 0 {
			return &ValidationError{Field: "interest_rate", Reason: "债权融资必须提供利率"}
		}
		if req.LoanTenureMonths == nil || *req.LoanTenureMonths <= 0 {
			return &ValidationError{Field: "loan_tenure_months", Reason: "债权融资必须提供借款期限"}
		}
		req.EquityPercentage = nil
	default:
		req.EquityPercentage = nil
		req.InterestRate = nil
		req.LoanTenureMonths = nil
	}

	return nil
}

// staleTransition 条件更新落空后重读记录，构造带当前状态的错误
func (l *FundRequestLogic) staleTransition(id int64, action string, expected model.FundRequestStatus) error {
	current := model.FundRequestStatus("unknown")
	if req, err := l.store.FindById(id); err == nil {
		current = req.Status
	}
	return &InvalidStateTransitionError{Action: action, Current: current, Expected: expected}
}
