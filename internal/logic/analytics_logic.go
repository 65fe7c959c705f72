package logic

import (
	"fmt"
	"sort"

	"github.com/venturebridge/vbs/internal/model"
)

// AnalyticsLogic 治理与统计分析业务逻辑
//
// 所有聚合值均在每次调用时基于已完成的融资请求从头重算，不缓存。
type AnalyticsLogic struct {
	store FundRequestStore
}

// NewAnalyticsLogic 创建统计分析业务逻辑
func NewAnalyticsLogic(store FundRequestStore) *AnalyticsLogic {
	return &AnalyticsLogic{store: store}
}

// InvestorShare 单个投资方的出资占比
type InvestorShare struct {
	InvestorId int64   `json:"investor_id"`
	Amount     float64 `json:"amount"`
	SharePct   float64 `json:"share_pct"` // 0-100
}

// MonthlyAmount 按月汇总
type MonthlyAmount struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// StartupFundingStats 创业方融资统计
type StartupFundingStats struct {
	StartupId      int64              `json:"startup_id"`
	TotalRaised    float64            `json:"total_raised"`
	InvestorCount  int                `json:"investor_count"`
	RequestCount   int                `json:"request_count"`
	ByFundingType  map[string]float64 `json:"by_funding_type"`
	ByCurrency     map[string]float64 `json:"by_currency"`
	Monthly        []MonthlyAmount    `json:"monthly"`
	InvestorShares []InvestorShare    `json:"investor_shares"`
	HHI            float64            `json:"hhi"`
	Concentration  string             `json:"concentration"`
}

// InvestorPortfolioStats 投资方投资统计
type InvestorPortfolioStats struct {
	InvestorId    int64              `json:"investor_id"`
	TotalInvested float64            `json:"total_invested"`
	StartupCount  int                `json:"startup_count"`
	RequestCount  int                `json:"request_count"`
	ByFundingType map[string]float64 `json:"by_funding_type"`
	ByCurrency    map[string]float64 `json:"by_currency"`
	Monthly       []MonthlyAmount    `json:"monthly"`
}

// 投资集中度分层阈值（HHI）
const (
	hhiModerateFloor = 1500
	hhiHighFloor     = 2500

	ConcentrationLow      = "Low"
	ConcentrationModerate = "Moderate"
	ConcentrationHigh     = "High"
)

// GetStartupFundingStats 获取创业方融资统计
func (a *AnalyticsLogic) GetStartupFundingStats(startupId int64) (*StartupFundingStats, error) {
	requests, err := a.store.ListCompleted(startupId, 0)
	if err != nil {
		return nil, fmt.Errorf("查询已完成融资请求失败: %w", err)
	}
	stats := BuildStartupFundingStats(requests)
	stats.StartupId = startupId
	return &stats, nil
}

// GetInvestorPortfolioStats 获取投资方投资统计
func (a *AnalyticsLogic) GetInvestorPortfolioStats(investorId int64) (*InvestorPortfolioStats, error) {
	requests, err := a.store.ListCompleted(0, investorId)
	if err != nil {
		return nil, fmt.Errorf("查询已完成融资请求失败: %w", err)
	}
	stats := BuildInvestorPortfolioStats(requests)
	stats.InvestorId = investorId
	return &stats, nil
}

// BuildStartupFundingStats 对已完成请求做融资统计，纯函数。
//
// 只有 completed 状态的记录才算真实投资，其余状态一律剔除。
// 空集合返回全零统计而非错误。
func BuildStartupFundingStats(requests []model.FundRequestModel) StartupFundingStats {
	stats := StartupFundingStats{
		ByFundingType:  map[string]float64{},
		ByCurrency:     map[string]float64{},
		Monthly:        []MonthlyAmount{},
		InvestorShares: []InvestorShare{},
		Concentration:  ConcentrationLow,
	}

	byInvestor := map[int64]float64{}
	byMonth := map[string]float64{}
	for _, req := range requests {
		if req.Status != model.FundRequestStatusCompleted {
			continue
		}
		stats.TotalRaised += req.Amount
		stats.RequestCount++
		stats.ByFundingType[string(req.FundingType)] += req.Amount
		stats.ByCurrency[req.Currency] += req.Amount
		byInvestor[req.InvestorId] += req.Amount
		byMonth[monthKey(req)] += req.Amount
	}

	stats.InvestorCount = len(byInvestor)
	stats.Monthly = sortedMonthly(byMonth)

	if stats.TotalRaised <= 0 {
		return stats
	}

	// 出资占比与 HHI
	for investorId, amount := range byInvestor {
		stats.InvestorShares = append(stats.InvestorShares, InvestorShare{
			InvestorId: investorId,
			Amount:     amount,
			SharePct:   amount / stats.TotalRaised * 100,
		})
	}
	sort.Slice(stats.InvestorShares, func(i, j int) bool {
		if stats.InvestorShares[i].Amount != stats.InvestorShares[j].Amount {
			return stats.InvestorShares[i].Amount > stats.InvestorShares[j].Amount
		}
		return stats.InvestorShares[i].InvestorId < stats.InvestorShares[j].InvestorId
	})

	for _, share := range stats.InvestorShares {
		stats.HHI += share.SharePct * share.SharePct
	}
	stats.Concentration = concentrationLabel(stats.HHI)

	return stats
}

// BuildInvestorPortfolioStats 对已完成请求做投资统计，纯函数
func BuildInvestorPortfolioStats(requests []model.FundRequestModel) InvestorPortfolioStats {
	stats := InvestorPortfolioStats{
		ByFundingType: map[string]float64{},
		ByCurrency:    map[string]float64{},
		Monthly:       []MonthlyAmount{},
	}

	startups := map[int64]struct{}{}
	byMonth := map[string]float64{}
	for _, req := range requests {
		if req.Status != model.FundRequestStatusCompleted {
			continue
		}
		stats.TotalInvested += req.Amount
		stats.RequestCount++
		stats.ByFundingType[string(req.FundingType)] += req.Amount
		stats.ByCurrency[req.Currency] += req.Amount
		startups[req.StartupId] = struct{}{}
		byMonth[monthKey(req)] += req.Amount
	}

	stats.StartupCount = len(startups)
	stats.Monthly = sortedMonthly(byMonth)
	return stats
}

func concentrationLabel(hhi float64) string {
	switch {
	case hhi < hhiModerateFloor:
		return ConcentrationLow
	case hhi < hhiHighFloor:
		return ConcentrationModerate
	default:
		return ConcentrationHigh
	}
}

// monthKey 按完成时间归入月份，缺失时退回创建时间
func monthKey(req model.FundRequestModel) string {
	if req.CompletedAt != nil {
		return req.CompletedAt.Format("2006-01")
	}
	return req.CreatedAt.Format("2006-01")
}

func sortedMonthly(byMonth map[string]float64) []MonthlyAmount {
	monthly := make([]MonthlyAmount, 0, len(byMonth))
	for month, amount := range byMonth {
		monthly = append(monthly, MonthlyAmount{Month: month, Amount: amount})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })
	return monthly
}
