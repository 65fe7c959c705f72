package model

import (
	"time"
)

// FundRequestModel 融资请求模型
//
// 由创业方发起、指向某个投资方的一笔融资请求。记录只增不删，
// 状态流转后的历史记录作为治理与统计分析的审计数据源。
type FundRequestModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 参与双方
	StartupId  int64 `json:"startup_id" gorm:"not null;index"`
	InvestorId int64 `json:"investor_id" gorm:"not null;index"`

	// 融资信息（金额为主币种单位，非最小单位）
	Amount      float64     `json:"amount" gorm:"not null"`
	Currency    string      `json:"currency" gorm:"default:'INR'"`
	FundingType FundingType `json:"funding_type" gorm:"not null"`
	Note        string      `json:"note" gorm:"type:text"`

	// 融资类型相关字段（仅对对应类型有意义，其余类型存 NULL）
	EquityPercentage *float64 `json:"equity_percentage,omitempty"` // equity 专用
	InterestRate     *float64 `json:"interest_rate,omitempty"`     // debt 专用
	LoanTenureMonths *int     `json:"loan_tenure_months,omitempty"`

	// 状态
	Status          FundRequestStatus `json:"status" gorm:"default:'pending';index"`
	RejectionReason string            `json:"rejection_reason,omitempty"`

	// 流转时间戳
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	RejectedAt  *time.Time `json:"rejected_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// 支付凭证（仅完成时写入）
	PaymentOrderId   string `json:"payment_order_id,omitempty"`
	PaymentId        string `json:"payment_id,omitempty"`
	PaymentSignature string `json:"-"`
}

// FundRequestStatus 融资请求状态
//
// 状态机单向流转：pending -> approved -> completed，或 pending -> rejected。
// 每次流转只允许发生一次，由状态相等性守卫保证。
type FundRequestStatus string

const (
	FundRequestStatusPending   FundRequestStatus = "pending"   // 待处理
	FundRequestStatusApproved  FundRequestStatus = "approved"  // 已批准，待支付
	FundRequestStatusRejected  FundRequestStatus = "rejected"  // 已拒绝（终态）
	FundRequestStatusCompleted FundRequestStatus = "completed" // 已完成（终态）
)

// FundingType 融资类型
type FundingType string

const (
	FundingTypeEquity      FundingType = "equity"       // 股权融资
	FundingTypeDebt        FundingType = "debt"         // 债权融资
	FundingTypeGrant       FundingType = "grant"        // 无偿资助
	FundingTypeVentureDebt FundingType = "venture_debt" // 风险债
)

// IsValid 校验融资类型是否合法
func (t FundingType) IsValid() bool {
	switch t {
	case FundingTypeEquity, FundingTypeDebt, FundingTypeGrant, FundingTypeVentureDebt:
		return true
	}
	return false
}

// TableName 自定义表名
func (FundRequestModel) TableName() string {
	return "fund_request"
}
