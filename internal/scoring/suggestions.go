package scoring

import (
	"fmt"
)

// GenerateSuggestions 按固定顺序生成改进建议与结论，纯函数。
//
// 结论对应的总评建议始终排在首位，盈亏平衡建议始终排在末位，
// 列表长度不小于 2。
func GenerateSuggestions(components ComponentScores, total int, m Metrics, projection Projection) (string, []string) {
	verdict := verdictFor(total)

	suggestions := []string{headlineFor(verdict)}

	if components.Unit < 15 {
		suggestions = append(suggestions, "单位经济模型偏弱，建议降低获客成本或提升客户生命周期价值")
	}
	if components.Market < 10 {
		suggestions = append(suggestions, "目标市场规模偏小，建议重新评估市场定位或拓展细分市场")
	}
	if m.MonthlyRevenue < m.MonthlyBurn {
		suggestions = append(suggestions, "当前收入无法覆盖支出，建议控制月度烧钱速度")
	}
	if m.RunwayMonths < 6 {
		suggestions = append(suggestions, "现金跑道不足6个月，建议尽快补充资金或削减开支")
	}
	if m.CompetitionLevel >= 8 {
		suggestions = append(suggestions, "赛道竞争激烈，建议明确产品差异化优势")
	}
	if components.Team < 6 {
		suggestions = append(suggestions, "团队经验评分偏低，建议引入有相关行业经验的核心成员")
	}

	switch {
	case projection.BreakEvenMonth == nil:
		suggestions = append(suggestions, fmt.Sprintf("按当前增长率%d个月内无法实现盈亏平衡，建议调整收入或成本结构", len(projection.Monthly)))
	case *projection.BreakEvenMonth <= 6:
		suggestions = append(suggestions, fmt.Sprintf("预计第%d个月实现盈亏平衡，财务模型较为健康", *projection.BreakEvenMonth))
	default:
		suggestions = append(suggestions, fmt.Sprintf("预计第%d个月实现盈亏平衡，建议关注中期现金流压力", *projection.BreakEvenMonth))
	}

	return verdict, suggestions
}

func verdictFor(total int) string {
	switch {
	case total >= 70:
		return VerdictViable
	case total >= 45:
		return VerdictCaution
	default:
		return VerdictRisky
	}
}

func headlineFor(verdict string) string {
	switch verdict {
	case VerdictViable:
		return "项目整体可行性较高，建议在保持单位经济模型的前提下加速增长"
	case VerdictCaution:
		return "项目可行性一般，建议优先补齐短板后再进行大额融资"
	default:
		return "项目当前风险较高，建议先验证商业模式再考虑融资"
	}
}
