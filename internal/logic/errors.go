package logic

import (
	"errors"
	"fmt"

	"github.com/venturebridge/vbs/internal/model"
)

// 业务错误分类。所有错误均同步返回给调用方，内部不做重试。
var (
	// ErrNotFound 引用的记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrPaymentValidationFailed 支付签名校验失败，状态保持不变
	ErrPaymentValidationFailed = errors.New("支付签名校验失败")
)

// ValidationError 请求字段缺失或非法
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数校验失败: %s %s", e.Field, e.Reason)
}

// AuthorizationError 调用方角色或身份不符合操作要求
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("无权执行该操作: %s", e.Reason)
}

// InvalidStateTransitionError 状态机守卫失败，携带当前与期望状态
type InvalidStateTransitionError struct {
	Action   string
	Current  model.FundRequestStatus
	Expected model.FundRequestStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("非法状态流转: 操作 %s 要求状态为 %s，当前状态为 %s", e.Action, e.Expected, e.Current)
}
