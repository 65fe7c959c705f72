package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreMarketSize(t *testing.T) {
	assert.Equal(t, 0.0, ScoreMarketSize(0))
	assert.Equal(t, 0.0, ScoreMarketSize(-100))

	// 10亿美元市场: log10(1e9+1)/10*30 ≈ 27
	assert.InDelta(t, 27.0, ScoreMarketSize(1e9), 0.01)

	// 超大市场渐近到上限30
	assert.Equal(t, 30.0, ScoreMarketSize(1e30))
}

func TestScoreUnitEconomics(t *testing.T) {
	assert.Equal(t, 0.0, ScoreUnitEconomics(0, 1000))
	assert.Equal(t, 0.0, ScoreUnitEconomics(100, 0))
	assert.Equal(t, 0.0, ScoreUnitEconomics(-1, 1000))

	// 比值为1（获客保本）得10分
	assert.InDelta(t, 10.0, ScoreUnitEconomics(500, 500), 0.0001)

	// 比值为5得满分
	assert.InDelta(t, 30.0, ScoreUnitEconomics(100, 500), 0.0001)

	// 比值再高也封顶
	assert.Equal(t, 30.0, ScoreUnitEconomics(10, 1000))
}

func TestScoreRunwayAndBurn(t *testing.T) {
	// 未记录支出视为现金流中性
	assert.Equal(t, 10.0, ScoreRunwayAndBurn(0, 0, 0))

	// 收入覆盖支出得满分
	assert.Equal(t, 20.0, ScoreRunwayAndBurn(1, 1000, 1000))
	assert.Equal(t, 20.0, ScoreRunwayAndBurn(0, 1000, 2000))

	// 18个月跑道为安全线
	assert.InDelta(t, 20.0, ScoreRunwayAndBurn(18, 1000, 0), 0.0001)
	assert.InDelta(t, 10.0, ScoreRunwayAndBurn(9, 1000, 0), 0.0001)
	assert.Equal(t, 20.0, ScoreRunwayAndBurn(36, 1000, 0))
}

func TestScoreCompetition(t *testing.T) {
	assert.InDelta(t, 10.0, ScoreCompetition(1), 0.0001)
	assert.InDelta(t, 6.0, ScoreCompetition(5), 0.0001)
	assert.InDelta(t, 1.0, ScoreCompetition(10), 0.0001)
}

func TestScoreTeam(t *testing.T) {
	assert.Equal(t, 0.0, ScoreTeam(0))
	assert.InDelta(t, 5.0, ScoreTeam(5), 0.0001)
	assert.InDelta(t, 10.0, ScoreTeam(10), 0.0001)
}

func TestComputeFinalScoreRange(t *testing.T) {
	cases := []Metrics{
		{},
		{MarketSizeUSD: 1e12, CAC: 10, LTV: 1000, RunwayMonths: 24, MonthlyBurn: 1000, MonthlyRevenue: 5000, CompetitionLevel: 1, TeamExperience: 10},
		{MarketSizeUSD: 1000, CAC: 1000, LTV: 100, RunwayMonths: 1, MonthlyBurn: 9000, MonthlyRevenue: 10, CompetitionLevel: 10, TeamExperience: 1},
		{MarketSizeUSD: 5e8, CAC: 200, LTV: 600, RunwayMonths: 12, MonthlyBurn: 4000, MonthlyRevenue: 3000, CompetitionLevel: 6, TeamExperience: 7},
	}

	for _, m := range cases {
		result := ComputeFinalScore(m)
		assert.GreaterOrEqual(t, result.Total, 0)
		assert.LessOrEqual(t, result.Total, 100)
		assert.NotEmpty(t, result.Verdict)
		assert.GreaterOrEqual(t, len(result.Suggestions), 2)
	}
}

func TestComputeFinalScoreDefaults(t *testing.T) {
	// 全零输入: 市场0 + 单位经济0 + 跑道10(无支出) + 竞争6(默认5) + 团队5(默认5)
	result := ComputeFinalScore(Metrics{})
	assert.Equal(t, 21, result.Total)
	assert.Equal(t, VerdictRisky, result.Verdict)
	assert.Equal(t, 0, result.Components.Market)
	assert.Equal(t, 0, result.Components.Unit)
	assert.Equal(t, 10, result.Components.Runway)
	assert.Equal(t, 6, result.Components.Competition)
	assert.Equal(t, 5, result.Components.Team)
}

func TestComputeFinalScoreRoundingOrder(t *testing.T) {
	// 总分来自未取整分量之和，与展示分量之和可能相差±1
	m := Metrics{
		MarketSizeUSD:    3e8,
		CAC:              150,
		LTV:              420,
		RunwayMonths:     10,
		MonthlyBurn:      5000,
		MonthlyRevenue:   2000,
		CompetitionLevel: 4,
		TeamExperience:   6,
	}
	m.Normalize()

	raw := ScoreMarketSize(m.MarketSizeUSD) +
		ScoreUnitEconomics(m.CAC, m.LTV) +
		ScoreRunwayAndBurn(m.RunwayMonths, m.MonthlyBurn, m.MonthlyRevenue) +
		ScoreCompetition(m.CompetitionLevel) +
		ScoreTeam(m.TeamExperience)

	result := ComputeFinalScore(m)
	assert.Equal(t, int(math.Round(raw)), result.Total)

	displayed := result.Components.Market + result.Components.Unit +
		result.Components.Runway + result.Components.Competition + result.Components.Team
	assert.InDelta(t, result.Total, displayed, 2)
}

func TestMetricsValidate(t *testing.T) {
	assert.NoError(t, Metrics{}.Validate())
	assert.NoError(t, Metrics{MonthlyRevenue: 100, MonthlyBurn: 100}.Validate())
	assert.Error(t, Metrics{MonthlyRevenue: -1}.Validate())
	assert.Error(t, Metrics{MonthlyBurn: -1}.Validate())
}

func TestMetricsNormalize(t *testing.T) {
	m := Metrics{}
	m.Normalize()
	assert.Equal(t, 5.0, m.CompetitionLevel)
	assert.Equal(t, 5.0, m.TeamExperience)

	m = Metrics{CompetitionLevel: 3, TeamExperience: 8}
	m.Normalize()
	assert.Equal(t, 3.0, m.CompetitionLevel)
	assert.Equal(t, 8.0, m.TeamExperience)
}
