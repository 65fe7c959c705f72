package logic

import (
	"encoding/json"
	"fmt"

	"github.com/venturebridge/vbs/internal/model"
	"github.com/venturebridge/vbs/internal/scoring"
)

// AnalysisLogic 可行性分析业务逻辑
type AnalysisLogic struct {
	users UserDirectory
	store AnalysisStore
}

// NewAnalysisLogic 创建可行性分析业务逻辑
func NewAnalysisLogic(users UserDirectory, store AnalysisStore) *AnalysisLogic {
	return &AnalysisLogic{users: users, store: store}
}

// AnalysisReport 一次分析的完整输出
type AnalysisReport struct {
	Id         int64              `json:"id"`
	StartupId  int64              `json:"startup_id"`
	Metrics    scoring.Metrics    `json:"metrics"`
	Score      scoring.Result     `json:"score"`
	Projection scoring.Projection `json:"projection"`
}

// RunAnalysis 执行评分并持久化快照
//
// 评分结果是提交时刻的快照，落库后不再重算。
func (a *AnalysisLogic) RunAnalysis(startupId int64, metrics scoring.Metrics) (*AnalysisReport, error) {
	startup, err := a.users.FindUser(startupId)
	if err != nil {
		return nil, err
	}
	if startup.Role != model.UserRoleStartup {
		return nil, &AuthorizationError{Reason: "只有创业方可以提交可行性分析"}
	}

	if err := metrics.Validate(); err != nil {
		return nil, &ValidationError{Field: "metrics", Reason: err.Error()}
	}

	metrics.Normalize()
	result := scoring.ComputeFinalScore(metrics)
	projection := scoring.ProjectProfitLoss(metrics.MonthlyRevenue, metrics.MonthlyBurn, metrics.MonthlyGrowthPct, scoring.DefaultHorizonMonths)

	snapshot := &model.AnalysisModel{
		StartupId:  startupId,
		TotalScore: result.Total,
		Verdict:    result.Verdict,
	}
	if snapshot.MetricsJSON, err = marshalField(metrics); err != nil {
		return nil, err
	}
	if snapshot.ResultJSON, err = marshalField(result); err != nil {
		return nil, err
	}
	if snapshot.ProjectionJSON, err = marshalField(projection); err != nil {
		return nil, err
	}

	if err := a.store.Create(snapshot); err != nil {
		return nil, fmt.Errorf("保存分析快照失败: %w", err)
	}

	return &AnalysisReport{
		Id:         snapshot.Id,
		StartupId:  startupId,
		Metrics:    metrics,
		Score:      result,
		Projection: projection,
	}, nil
}

// GetAnalysis 获取单条分析快照
func (a *AnalysisLogic) GetAnalysis(id int64) (*AnalysisReport, error) {
	snapshot, err := a.store.FindById(id)
	if err != nil {
		return nil, err
	}
	return reportFromSnapshot(snapshot)
}

// ListStartupAnalyses 获取创业方的历史分析快照
func (a *AnalysisLogic) ListStartupAnalyses(startupId int64, page, pageSize int) ([]model.AnalysisModel, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return a.store.ListByStartup(startupId, page, pageSize)
}

// reportFromSnapshot 从落库快照还原完整报告
func reportFromSnapshot(snapshot *model.AnalysisModel) (*AnalysisReport, error) {
	report := &AnalysisReport{
		Id:        snapshot.Id,
		StartupId: snapshot.StartupId,
	}
	if err := json.Unmarshal([]byte(snapshot.MetricsJSON), &report.Metrics); err != nil {
		return nil, fmt.Errorf("解析分析快照失败: %w", err)
	}
	if err := json.Unmarshal([]byte(snapshot.ResultJSON), &report.Score); err != nil {
		return nil, fmt.Errorf("解析分析快照失败: %w", err)
	}
	if err := json.Unmarshal([]byte(snapshot.ProjectionJSON), &report.Projection); err != nil {
		return nil, fmt.Errorf("解析分析快照失败: %w", err)
	}
	return report, nil
}

func marshalField(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("序列化分析快照失败: %w", err)
	}
	return string(data), nil
}
