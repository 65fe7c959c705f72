package model

import (
	"time"
)

// AnalysisModel 可行性分析快照模型
//
// 每次提交指标都会生成一条快照，评分结果落库后不再重算。
type AnalysisModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 提交方
	StartupId int64 `json:"startup_id" gorm:"not null;index"`

	// 冗余字段，便于列表查询
	TotalScore int    `json:"total_score" gorm:"not null"`
	Verdict    string `json:"verdict" gorm:"not null"`

	// 完整快照（JSON 序列化）
	MetricsJSON    string `json:"-" gorm:"type:text;column:metrics_json"`
	ResultJSON     string `json:"-" gorm:"type:text;column:result_json"`
	ProjectionJSON string `json:"-" gorm:"type:text;column:projection_json"`
}

// TableName 自定义表名
func (AnalysisModel) TableName() string {
	return "viability_analysis"
}
