package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/venturebridge/vbs/internal/config"
	"github.com/venturebridge/vbs/internal/logger"
	"github.com/venturebridge/vbs/internal/model"
	"gorm.io/gorm"
)

// FundingReportJob 平台融资概况任务，周期性输出总量日志
type FundingReportJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewFundingReportJob 创建融资概况任务
func NewFundingReportJob(db *gorm.DB, cfg *config.Config) *FundingReportJob {
	return &FundingReportJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *FundingReportJob) GetName() string {
	return "funding_report"
}

// GetSchedule 获取调度配置
func (j *FundingReportJob) GetSchedule() gocron.JobDefinition {
	// 概况日志频率取处理周期的10倍，避免刷屏
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * 10 * time.Second)
}

// Execute 执行任务
func (j *FundingReportJob) Execute() {
	var stats struct {
		CompletedCount int64
		CompletedTotal float64
		PendingCount   int64
	}

	if err := j.db.Model(&model.FundRequestModel{}).
		Where("status = ?", model.FundRequestStatusCompleted).
		Select("COUNT(*) AS completed_count, COALESCE(SUM(amount), 0) AS completed_total").
		Scan(&stats).Error; err != nil {
		logger.Error("Failed to aggregate completed fund requests: %v", err)
		return
	}

	if err := j.db.Model(&model.FundRequestModel{}).
		Where("status = ?", model.FundRequestStatusPending).
		Count(&stats.PendingCount).Error; err != nil {
		logger.Error("Failed to count pending fund requests: %v", err)
		return
	}

	logger.Info("Funding overview: %d completed requests totaling %.2f, %d pending",
		stats.CompletedCount, stats.CompletedTotal, stats.PendingCount)
}
