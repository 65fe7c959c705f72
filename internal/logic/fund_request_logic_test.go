package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturebridge/vbs/internal/model"
	"github.com/venturebridge/vbs/internal/payment"
)

// ==========================
// 测试替身
// ==========================

type fakeDirectory struct {
	users map[int64]*model.UserModel
}

func (d *fakeDirectory) FindUser(id int64) (*model.UserModel, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

type fakeStore struct {
	records        map[int64]*model.FundRequestModel
	nextId         int64
	failNextUpdate bool // 模拟条件更新被并发流转抢先
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[int64]*model.FundRequestModel{}, nextId: 1}
}

func (s *fakeStore) Create(req *model.FundRequestModel) error {
	req.Id = s.nextId
	s.nextId++
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	clone := *req
	s.records[req.Id] = &clone
	return nil
}

func (s *fakeStore) FindById(id int64) (*model.FundRequestModel, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (s *fakeStore) List(filter FundRequestFilter) ([]model.FundRequestModel, int64, error) {
	var out []model.FundRequestModel
	for _, rec := range s.records {
		if filter.StartupId > 0 && rec.StartupId != filter.StartupId {
			continue
		}
		if filter.InvestorId > 0 && rec.InvestorId != filter.InvestorId {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (s *fakeStore) UpdateIfStatus(id int64, expected model.FundRequestStatus, updates map[string]interface{}) (bool, error) {
	if s.failNextUpdate {
		s.failNextUpdate = false
		return false, nil
	}
	rec, ok := s.records[id]
	if !ok || rec.Status != expected {
		return false, nil
	}
	for key, value := range updates {
		switch key {
		case "status":
			rec.Status = value.(model.FundRequestStatus)
		case "approved_at":
			rec.ApprovedAt = value.(*time.Time)
		case "rejected_at":
			rec.RejectedAt = value.(*time.Time)
		case "completed_at":
			rec.CompletedAt = value.(*time.Time)
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		case "payment_order_id":
			rec.PaymentOrderId = value.(string)
		case "payment_id":
			rec.PaymentId = value.(string)
		case "payment_signature":
			rec.PaymentSignature = value.(string)
		}
	}
	return true, nil
}

func (s *fakeStore) ListCompleted(startupId, investorId int64) ([]model.FundRequestModel, error) {
	var out []model.FundRequestModel
	for _, rec := range s.records {
		if rec.Status != model.FundRequestStatusCompleted {
			continue
		}
		if startupId > 0 && rec.StartupId != startupId {
			continue
		}
		if investorId > 0 && rec.InvestorId != investorId {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

type fakeSink struct {
	published int
}

func (s *fakeSink) Publish(senderId, recipientId int64, content string) {
	s.published++
}

// ==========================
// 辅助函数
// ==========================

const (
	startupId       = int64(1)
	investorId      = int64(2)
	otherInvestorId = int64(4)
)

func newTestLogic() (*FundRequestLogic, *fakeStore, *fakeSink, *payment.Verifier) {
	directory := &fakeDirectory{users: map[int64]*model.UserModel{
		1: {Id: 1, Name: "Nimbus Labs", Role: model.UserRoleStartup},
		2: {Id: 2, Name: "Horizon Capital", Role: model.UserRoleInvestor},
		3: {Id: 3, Name: "Quanta Works", Role: model.UserRoleStartup},
		4: {Id: 4, Name: "Beacon Ventures", Role: model.UserRoleInvestor},
	}}
	store := newFakeStore()
	sink := &fakeSink{}
	verifier := payment.NewVerifier("test-secret")
	return NewFundRequestLogic(directory, store, verifier, sink), store, sink, verifier
}

func equityRequest() *model.FundRequestModel {
	pct := 10.0
	return &model.FundRequestModel{
		StartupId:        startupId,
		InvestorId:       investorId,
		Amount:           500000,
		FundingType:      model.FundingTypeEquity,
		EquityPercentage: &pct,
	}
}

func createPending(t *testing.T, l *FundRequestLogic) *model.FundRequestModel {
	req := equityRequest()
	require.NoError(t, l.CreateFundRequest(req))
	return req
}

func approve(t *testing.T, l *FundRequestLogic, id int64) *model.FundRequestModel {
	req, err := l.ApproveFundRequest(id, investorId)
	require.NoError(t, err)
	return req
}

// ==========================
// 创建
// ==========================

func TestCreateFundRequest(t *testing.T) {
	l, _, sink, _ := newTestLogic()

	req := createPending(t, l)

	assert.Equal(t, model.FundRequestStatusPending, req.Status)
	assert.Equal(t, "INR", req.Currency)
	assert.Nil(t, req.InterestRate)
	assert.Nil(t, req.LoanTenureMonths)
	assert.Equal(t, 1, sink.published)
}

func TestCreateFundRequestRoleGuards(t *testing.T) {
	l, _, _, _ := newTestLogic()

	var authErr *AuthorizationError

	// 投资方不能作为发起方
	req := equityRequest()
	req.StartupId = investorId
	err := l.CreateFundRequest(req)
	require.Error(t, err)
	assert.True(t, errors.As(err, &authErr))

	// 接收方必须是投资方
	req = equityRequest()
	req.InvestorId = 3
	err = l.CreateFundRequest(req)
	require.Error(t, err)
	assert.True(t, errors.As(err, &authErr))

	// 用户不存在
	var validationErr *ValidationError
	req = equityRequest()
	req.StartupId = 99
	err = l.CreateFundRequest(req)
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))
}

func TestCreateFundRequestValidation(t *testing.T) {
	l, _, _, _ := newTestLogic()

	var validationErr *ValidationError

	// 金额必须大于0
	req := equityRequest()
	req.Amount = 0
	err := l.CreateFundRequest(req)
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	// 股权融资缺少出让比例
	req = equityRequest()
	req.EquityPercentage = nil
	err = l.CreateFundRequest(req)
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	// 债权融资缺少利率
	rate := 12.5
	tenure := 24
	req = &model.FundRequestModel{
		StartupId:        startupId,
		InvestorId:       investorId,
		Amount:           200000,
		FundingType:      model.FundingTypeDebt,
		LoanTenureMonths: &tenure,
	}
	err = l.CreateFundRequest(req)
	require.Error(t, err)
	assert.True(t, errors.As(err, &validationErr))

	// 债权融资字段齐全时股权字段被清空
	pct := 5.0
	req = &model.FundRequestModel{
		StartupId:        startupId,
		InvestorId:       investorId,
		Amount:           200000,
		FundingType:      model.FundingTypeDebt,
		InterestRate:     &rate,
		LoanTenureMonths: &tenure,
		EquityPercentage: &pct,
	}
	require.NoError(t, l.CreateFundRequest(req))
	assert.Nil(t, req.EquityPercentage)

	// 资助类融资不携带任何类型专属字段
	req = &model.FundRequestModel{
		StartupId:        startupId,
		InvestorId:       investorId,
		Amount:           100000,
		FundingType:      model.FundingTypeGrant,
		EquityPercentage: &pct,
		InterestRate:     &rate,
	}
	require.NoError(t, l.CreateFundRequest(req))
	assert.Nil(t, req.EquityPercentage)
	assert.Nil(t, req.InterestRate)
	assert.Nil(t, req.LoanTenureMonths)
}

// ==========================
// 批准 / 拒绝
// ==========================

func TestApproveFundRequest(t *testing.T) {
	l, _, _, _ := newTestLogic()
	req := createPending(t, l)

	approved := approve(t, l, req.Id)
	assert.Equal(t, model.FundRequestStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestApproveRequiresAddressedInvestor(t *testing.T) {
	l, store, _, _ := newTestLogic()
	req := createPending(t, l)

	_, err := l.ApproveFundRequest(req.Id, otherInvestorId)
	var authErr *AuthorizationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &authErr))

	// 状态未被改动
	current, _ := store.FindById(req.Id)
	assert.Equal(t, model.FundRequestStatusPending, current.Status)
}

func TestApproveRejectedRequestFails(t *testing.T) {
	l, store, _, _ := newTestLogic()
	req := createPending(t, l)

	_, err := l.RejectFundRequest(req.Id, investorId, "估值过高")
	require.NoError(t, err)

	_, err = l.ApproveFundRequest(req.Id, investorId)
	var stateErr *InvalidStateTransitionError
	require.Error(t, err)
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, model.FundRequestStatusRejected, stateErr.Current)
	assert.Equal(t, model.FundRequestStatusPending, stateErr.Expected)

	// 拒绝为终态，状态保持不变
	current, _ := store.FindById(req.Id)
	assert.Equal(t, model.FundRequestStatusRejected, current.Status)
}

func TestRejectStoresReason(t *testing.T) {
	l, store, _, _ := newTestLogic()
	req := createPending(t, l)

	rejected, err := l.RejectFundRequest(req.Id, investorId, "赛道不匹配")
	require.NoError(t, err)
	assert.Equal(t, model.FundRequestStatusRejected, rejected.Status)
	assert.Equal(t, "赛道不匹配", rejected.RejectionReason)
	assert.NotNil(t, rejected.RejectedAt)

	current, _ := store.FindById(req.Id)
	assert.Equal(t, "赛道不匹配", current.RejectionReason)
}

func TestApproveLostRace(t *testing.T) {
	l, store, _, _ := newTestLogic()
	req := createPending(t, l)

	// 条件更新未命中时报告状态冲突，而不是静默覆盖
	store.failNextUpdate = true
	_, err := l.ApproveFundRequest(req.Id, investorId)
	var stateErr *InvalidStateTransitionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &stateErr))
}

// ==========================
// 支付完成
// ==========================

func TestCompletePayment(t *testing.T) {
	l, store, _, verifier := newTestLogic()
	req := createPending(t, l)
	approve(t, l, req.Id)

	signature := verifier.Sign("order_abc", "pay_xyz")
	completed, err := l.CompletePayment(req.Id, investorId, "order_abc", "pay_xyz", signature)
	require.NoError(t, err)

	assert.Equal(t, model.FundRequestStatusCompleted, completed.Status)
	assert.Equal(t, "order_abc", completed.PaymentOrderId)
	assert.Equal(t, "pay_xyz", completed.PaymentId)
	assert.NotNil(t, completed.CompletedAt)

	current, _ := store.FindById(req.Id)
	assert.Equal(t, signature, current.PaymentSignature)
}

func TestCompletePaymentTamperedSignature(t *testing.T) {
	l, store, _, verifier := newTestLogic()
	req := createPending(t, l)
	approve(t, l, req.Id)

	signature := verifier.Sign("order_abc", "pay_xyz")
	tampered := signature[:len(signature)-1] + "0"
	if tampered == signature {
		tampered = signature[:len(signature)-1] + "1"
	}

	_, err := l.CompletePayment(req.Id, investorId, "order_abc", "pay_xyz", tampered)
	require.ErrorIs(t, err, ErrPaymentValidationFailed)

	// 签名不符时状态保持 approved
	current, _ := store.FindById(req.Id)
	assert.Equal(t, model.FundRequestStatusApproved, current.Status)
	assert.Empty(t, current.PaymentId)
}

func TestCompletePaymentRequiresApprovedStatus(t *testing.T) {
	l, _, _, verifier := newTestLogic()
	req := createPending(t, l)

	signature := verifier.Sign("order_abc", "pay_xyz")
	_, err := l.CompletePayment(req.Id, investorId, "order_abc", "pay_xyz", signature)
	var stateErr *InvalidStateTransitionError
	require.Error(t, err)
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, model.FundRequestStatusPending, stateErr.Current)
	assert.Equal(t, model.FundRequestStatusApproved, stateErr.Expected)
}

func TestCompletePaymentReplayFails(t *testing.T) {
	l, _, _, verifier := newTestLogic()
	req := createPending(t, l)
	approve(t, l, req.Id)

	signature := verifier.Sign("order_abc", "pay_xyz")
	_, err := l.CompletePayment(req.Id, investorId, "order_abc", "pay_xyz", signature)
	require.NoError(t, err)

	// 同一笔请求只能支付一次
	_, err = l.CompletePayment(req.Id, investorId, "order_abc", "pay_xyz", signature)
	var stateErr *InvalidStateTransitionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &stateErr))
}

func TestCompletePaymentRequiresApprovingInvestor(t *testing.T) {
	l, _, _, verifier := newTestLogic()
	req := createPending(t, l)
	approve(t, l, req.Id)

	signature := verifier.Sign("order_abc", "pay_xyz")
	_, err := l.CompletePayment(req.Id, otherInvestorId, "order_abc", "pay_xyz", signature)
	var authErr *AuthorizationError
	require.Error(t, err)
	assert.True(t, errors.As(err, &authErr))
}

// ==========================
// 网关下单
// ==========================

func TestCreatePaymentOrder(t *testing.T) {
	l, _, _, _ := newTestLogic()
	req := createPending(t, l)

	// pending 状态不能下单
	_, err := l.CreatePaymentOrder(req.Id, investorId)
	var stateErr *InvalidStateTransitionError
	require.Error(t, err)
	assert.True(t, errors.As(err, &stateErr))

	approve(t, l, req.Id)

	order, err := l.CreatePaymentOrder(req.Id, investorId)
	require.NoError(t, err)
	// 融资金额为主币种单位，网关订单为最小货币单位
	assert.EqualValues(t, 50000000, order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.NotEmpty(t, order.ReceiptId)
}
