package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"

	"github.com/google/uuid"
)

// Verifier 支付签名校验器
//
// 网关回调签名为 HMAC-SHA256(orderId + "|" + paymentId, secret) 的
// 十六进制编码，服务端持有密钥重新计算后常量时间比较。
type Verifier struct {
	secret []byte
}

// NewVerifier 创建签名校验器
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign 计算签名
func (v *Verifier) Sign(orderId, paymentId string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify 校验签名
func (v *Verifier) Verify(orderId, paymentId, signature string) bool {
	expected := v.Sign(orderId, paymentId)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Order 网关下单参数
//
// 注意单位差异：融资请求金额为主币种单位，网关下单金额为最小货币
// 单位（如 paise），换算只在下单边界发生一次。
type Order struct {
	ReceiptId string `json:"receipt_id"`
	Amount    int64  `json:"amount"` // 最小货币单位
	Currency  string `json:"currency"`
}

// NewOrder 按主币种金额构造网关下单参数
func NewOrder(amount float64, currency string) Order {
	return Order{
		ReceiptId: "rcpt_" + uuid.NewString(),
		Amount:    ToMinorUnit(amount),
		Currency:  currency,
	}
}

// ToMinorUnit 主币种单位转最小货币单位
func ToMinorUnit(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
