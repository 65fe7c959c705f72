package scoring

import (
	"errors"
	"math"
)

// Metrics 创业项目原始指标
//
// 缺省值约定：数值字段缺省为 0，竞争程度与团队评分缺省取中位值 5。
type Metrics struct {
	MarketSizeUSD    float64 `json:"market_size_estimate_usd"`
	CAC              float64 `json:"cac"`
	LTV              float64 `json:"ltv"`
	RunwayMonths     float64 `json:"runway_months"`
	MonthlyBurn      float64 `json:"monthly_burn"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	CompetitionLevel float64 `json:"competition_level"`
	TeamExperience   float64 `json:"team_experience_rating"`
	MonthlyGrowthPct float64 `json:"expected_monthly_growth_pct"`
}

// Normalize 填充缺省值
func (m *Metrics) Normalize() {
	if m.CompetitionLevel <= 0 {
		m.CompetitionLevel = 5
	}
	if m.TeamExperience <= 0 {
		m.TeamExperience = 5
	}
}

// Validate 校验指标合法性
func (m Metrics) Validate() error {
	if m.MonthlyRevenue < 0 {
		return errors.New("月收入不能为负数")
	}
	if m.MonthlyBurn < 0 {
		return errors.New("月支出不能为负数")
	}
	return nil
}

// ComponentScores 各维度得分（取整后的展示值）
type ComponentScores struct {
	Market      int `json:"market"`      // 市场规模 0-30
	Unit        int `json:"unit"`        // 单位经济模型 0-30
	Runway      int `json:"runway"`      // 现金跑道 0-20
	Competition int `json:"competition"` // 竞争格局 0-10
	Team        int `json:"team"`        // 团队经验 0-10
}

// Result 可行性评分结果
type Result struct {
	Components  ComponentScores `json:"components"`
	Total       int             `json:"total"`
	Verdict     string          `json:"verdict"`
	Suggestions []string        `json:"suggestions"`
}

// 评分结论
const (
	VerdictViable  = "viable"  // total >= 70
	VerdictCaution = "caution" // 45 <= total < 70
	VerdictRisky   = "risky"   // total < 45
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScoreMarketSize 市场规模得分，0-30
//
// 市场规模声称值动辄相差几个数量级，取对数避免离群值主导总分。
func ScoreMarketSize(marketUSD float64) float64 {
	if marketUSD <= 0 {
		return 0
	}
	return clamp(math.Log10(marketUSD+1)/10*30, 0, 30)
}

// ScoreUnitEconomics 单位经济模型得分，0-30
//
// LTV/CAC 比值为 1（获客刚好保本）得 10 分，比值 5 及以上得满分 30。
func ScoreUnitEconomics(cac, ltv float64) float64 {
	if cac <= 0 || ltv <= 0 {
		return 0
	}
	ratio := ltv / cac
	return clamp((ratio-1)/4*30+10, 0, 30)
}

// ScoreRunwayAndBurn 现金跑道得分，0-20
//
// 未记录支出视为现金流中性给 10 分；收入覆盖支出给满分；
// 否则按 18 个月安全跑道线性折算。
func ScoreRunwayAndBurn(runwayMonths, monthlyBurn, monthlyRevenue float64) float64 {
	if monthlyBurn <= 0 {
		return 10
	}
	if monthlyRevenue >= monthlyBurn {
		return 20
	}
	return clamp(runwayMonths/18*20, 0, 20)
}

// ScoreCompetition 竞争格局得分，0-10，竞争程度越高得分越低
func ScoreCompetition(level float64) float64 {
	return clamp((11-level)/10*10, 0, 10)
}

// ScoreTeam 团队经验得分，0-10，线性映射
func ScoreTeam(rating float64) float64 {
	return clamp(rating/10*10, 0, 10)
}

// ComputeFinalScore 计算最终可行性评分，纯函数，无副作用。
//
// 总分先对未取整的各维度得分求和再取整，展示的各维度得分单独取整，
// 因此展示值相加与总分可能相差 ±1，属预期行为。
func ComputeFinalScore(m Metrics) Result {
	m.Normalize()

	market := ScoreMarketSize(m.MarketSizeUSD)
	unit := ScoreUnitEconomics(m.CAC, m.LTV)
	runway := ScoreRunwayAndBurn(m.RunwayMonths, m.MonthlyBurn, m.MonthlyRevenue)
	competition := ScoreCompetition(m.CompetitionLevel)
	team := ScoreTeam(m.TeamExperience)

	total := int(math.Round(clamp(market+unit+runway+competition+team, 0, 100)))

	components := ComponentScores{
		Market:      int(math.Round(market)),
		Unit:        int(math.Round(unit)),
		Runway:      int(math.Round(runway)),
		Competition: int(math.Round(competition)),
		Team:        int(math.Round(team)),
	}

	projection := ProjectProfitLoss(m.MonthlyRevenue, m.MonthlyBurn, m.MonthlyGrowthPct, DefaultHorizonMonths)
	verdict, suggestions := GenerateSuggestions(components, total, m, projection)

	return Result{
		Components:  components,
		Total:       total,
		Verdict:     verdict,
		Suggestions: suggestions,
	}
}
