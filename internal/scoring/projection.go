package scoring

import (
	"math"
)

// DefaultHorizonMonths 默认预测周期
const DefaultHorizonMonths = 12

// MonthlyRecord 单月损益记录（展示值取整）
type MonthlyRecord struct {
	Month   int   `json:"month"`
	Revenue int64 `json:"revenue"`
	Burn    int64 `json:"burn"`
	Profit  int64 `json:"profit"`
}

// Projection 损益预测结果
type Projection struct {
	Monthly        []MonthlyRecord `json:"monthly"`
	BreakEvenMonth *int            `json:"break_even_month"`
}

// ProjectProfitLoss 按月复利收入、固定支出推算损益，纯函数。
//
// 增长率只作用于收入，支出保持不变。盈亏平衡月取各月取整利润的
// 累计和首次 >= 0 的月份，周期内未达到则为 nil。
func ProjectProfitLoss(monthlyRevenue, monthlyBurn, growthRatePct float64, months int) Projection {
	if months <= 0 {
		months = DefaultHorizonMonths
	}

	monthly := make([]MonthlyRecord, 0, months)
	revenue := monthlyRevenue
	for m := 1; m <= months; m++ {
		monthly = append(monthly, MonthlyRecord{
			Month:   m,
			Revenue: int64(math.Round(revenue)),
			Burn:    int64(math.Round(monthlyBurn)),
			Profit:  int64(math.Round(revenue - monthlyBurn)),
		})
		revenue *= 1 + growthRatePct/100
	}

	// 第二遍扫描确定盈亏平衡月
	var breakEven *int
	var cumulative int64
	for _, rec := range monthly {
		cumulative += rec.Profit
		if cumulative >= 0 {
			month := rec.Month
			breakEven = &month
			break
		}
	}

	return Projection{Monthly: monthly, BreakEvenMonth: breakEven}
}
