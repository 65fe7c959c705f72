package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venturebridge/vbs/internal/model"
)

func completedRequest(startupId, investorId int64, amount float64, completedAt time.Time) model.FundRequestModel {
	return model.FundRequestModel{
		StartupId:   startupId,
		InvestorId:  investorId,
		Amount:      amount,
		Currency:    "INR",
		FundingType: model.FundingTypeEquity,
		Status:      model.FundRequestStatusCompleted,
		CompletedAt: &completedAt,
	}
}

func TestBuildStartupFundingStatsEmpty(t *testing.T) {
	stats := BuildStartupFundingStats(nil)

	assert.Equal(t, 0.0, stats.TotalRaised)
	assert.Equal(t, 0, stats.InvestorCount)
	assert.Equal(t, 0, stats.RequestCount)
	assert.Equal(t, 0.0, stats.HHI)
	assert.Equal(t, ConcentrationLow, stats.Concentration)
	assert.Empty(t, stats.Monthly)
	assert.Empty(t, stats.InvestorShares)
}

func TestBuildStartupFundingStatsTwoEqualInvestors(t *testing.T) {
	now := time.Now()
	stats := BuildStartupFundingStats([]model.FundRequestModel{
		completedRequest(1, 2, 500000, now),
		completedRequest(1, 4, 500000, now),
	})

	assert.Equal(t, 1000000.0, stats.TotalRaised)
	assert.Equal(t, 2, stats.InvestorCount)
	require.Len(t, stats.InvestorShares, 2)
	assert.InDelta(t, 50.0, stats.InvestorShares[0].SharePct, 0.0001)
	assert.InDelta(t, 50.0, stats.InvestorShares[1].SharePct, 0.0001)

	// 50² + 50² = 5000 -> 高集中度
	assert.InDelta(t, 5000.0, stats.HHI, 0.0001)
	assert.Equal(t, ConcentrationHigh, stats.Concentration)
}

func TestBuildStartupFundingStatsIgnoresNonCompleted(t *testing.T) {
	now := time.Now()
	pending := completedRequest(1, 2, 900000, now)
	pending.Status = model.FundRequestStatusPending
	approved := completedRequest(1, 4, 800000, now)
	approved.Status = model.FundRequestStatusApproved
	rejected := completedRequest(1, 4, 700000, now)
	rejected.Status = model.FundRequestStatusRejected

	stats := BuildStartupFundingStats([]model.FundRequestModel{
		pending,
		approved,
		rejected,
		completedRequest(1, 2, 100000, now),
	})

	// 只有 completed 记录计入真实投资
	assert.Equal(t, 100000.0, stats.TotalRaised)
	assert.Equal(t, 1, stats.RequestCount)
	assert.Equal(t, 1, stats.InvestorCount)
}

func TestBuildStartupFundingStatsConcentrationTiers(t *testing.T) {
	now := time.Now()

	// 10个投资方均分: HHI = 10 * 10² = 1000 -> 低集中度
	var spread []model.FundRequestModel
	for i := int64(0); i < 10; i++ {
		spread = append(spread, completedRequest(1, 100+i, 100000, now))
	}
	stats := BuildStartupFundingStats(spread)
	assert.InDelta(t, 1000.0, stats.HHI, 0.0001)
	assert.Equal(t, ConcentrationLow, stats.Concentration)

	// 40/30/30: 1600+900+900 = 3400 -> 高集中度
	stats = BuildStartupFundingStats([]model.FundRequestModel{
		completedRequest(1, 2, 400000, now),
		completedRequest(1, 4, 300000, now),
		completedRequest(1, 5, 300000, now),
	})
	assert.InDelta(t, 3400.0, stats.HHI, 0.0001)
	assert.Equal(t, ConcentrationHigh, stats.Concentration)

	// 5个投资方均分: 5 * 20² = 2000 -> 中等集中度
	var five []model.FundRequestModel
	for i := int64(0); i < 5; i++ {
		five = append(five, completedRequest(1, 200+i, 200000, now))
	}
	stats = BuildStartupFundingStats(five)
	assert.InDelta(t, 2000.0, stats.HHI, 0.0001)
	assert.Equal(t, ConcentrationModerate, stats.Concentration)
}

func TestBuildStartupFundingStatsBreakdowns(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	debt := completedRequest(1, 2, 300000, feb)
	debt.FundingType = model.FundingTypeDebt
	debt.Currency = "USD"

	stats := BuildStartupFundingStats([]model.FundRequestModel{
		completedRequest(1, 2, 500000, jan),
		debt,
	})

	assert.Equal(t, 500000.0, stats.ByFundingType["equity"])
	assert.Equal(t, 300000.0, stats.ByFundingType["debt"])
	assert.Equal(t, 500000.0, stats.ByCurrency["INR"])
	assert.Equal(t, 300000.0, stats.ByCurrency["USD"])

	require.Len(t, stats.Monthly, 2)
	assert.Equal(t, "2026-01", stats.Monthly[0].Month)
	assert.Equal(t, 500000.0, stats.Monthly[0].Amount)
	assert.Equal(t, "2026-02", stats.Monthly[1].Month)
	assert.Equal(t, 300000.0, stats.Monthly[1].Amount)
}

func TestBuildInvestorPortfolioStats(t *testing.T) {
	now := time.Now()
	stats := BuildInvestorPortfolioStats([]model.FundRequestModel{
		completedRequest(1, 2, 500000, now),
		completedRequest(3, 2, 250000, now),
		completedRequest(1, 2, 250000, now),
	})

	assert.Equal(t, 1000000.0, stats.TotalInvested)
	assert.Equal(t, 2, stats.StartupCount)
	assert.Equal(t, 3, stats.RequestCount)
}

func TestBuildInvestorPortfolioStatsEmpty(t *testing.T) {
	stats := BuildInvestorPortfolioStats([]model.FundRequestModel{})
	assert.Equal(t, 0.0, stats.TotalInvested)
	assert.Equal(t, 0, stats.StartupCount)
	assert.Empty(t, stats.Monthly)
}

func TestAnalyticsLogicRecomputesFromStore(t *testing.T) {
	fundLogic, store, _, verifier := newTestLogic()
	analytics := NewAnalyticsLogic(store)

	// 尚无已完成请求时返回全零统计
	stats, err := analytics.GetStartupFundingStats(startupId)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalRaised)

	// 走完整个生命周期后统计结果随之更新（每次调用从头重算）
	req := createPending(t, fundLogic)
	approve(t, fundLogic, req.Id)
	signature := verifier.Sign("order_1", "pay_1")
	_, err = fundLogic.CompletePayment(req.Id, investorId, "order_1", "pay_1", signature)
	require.NoError(t, err)

	stats, err = analytics.GetStartupFundingStats(startupId)
	require.NoError(t, err)
	assert.Equal(t, 500000.0, stats.TotalRaised)
	assert.Equal(t, 1, stats.InvestorCount)
	assert.Equal(t, ConcentrationHigh, stats.Concentration)
}
