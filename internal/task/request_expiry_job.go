package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/venturebridge/vbs/internal/config"
	"github.com/venturebridge/vbs/internal/logger"
	"github.com/venturebridge/vbs/internal/model"
	"github.com/venturebridge/vbs/internal/repository"
	"gorm.io/gorm"
)

// RequestExpiryJob 待处理融资请求超时任务
//
// 超过配置时长仍未被投资方处理的 pending 请求自动转为 rejected，
// 使用与业务流转相同的条件更新守卫，不会覆盖并发流转的结果。
type RequestExpiryJob struct {
	store  *repository.FundRequestRepository
	config *config.Config
}

// NewRequestExpiryJob 创建超时任务
func NewRequestExpiryJob(db *gorm.DB, cfg *config.Config) *RequestExpiryJob {
	return &RequestExpiryJob{
		store:  repository.NewFundRequestRepository(db),
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *RequestExpiryJob) GetName() string {
	return "fund_request_expiry"
}

// GetSchedule 获取调度配置
func (j *RequestExpiryJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *RequestExpiryJob) Execute() {
	ttl := time.Duration(j.config.Task.PendingTTLHours) * time.Hour
	cutoff := time.Now().Add(-ttl)

	stale, err := j.store.ListStalePending(cutoff)
	if err != nil {
		logger.Error("Failed to fetch stale fund requests: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	expiredCount := 0
	for _, req := range stale {
		now := time.Now()
		ok, err := j.store.UpdateIfStatus(req.Id, model.FundRequestStatusPending, map[string]interface{}{
			"status":           model.FundRequestStatusRejected,
			"rejected_at":      &now,
			"rejection_reason": "长时间未处理，已自动关闭",
		})
		if err != nil {
			logger.Error("Failed to expire fund request %d: %v", req.Id, err)
			continue
		}
		if ok {
			expiredCount++
		}
	}

	logger.Info("Fund request expiry completed, expired %d of %d stale requests", expiredCount, len(stale))
}
