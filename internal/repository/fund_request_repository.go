package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/venturebridge/vbs/internal/logic"
	"github.com/venturebridge/vbs/internal/model"
	"gorm.io/gorm"
)

// FundRequestRepository 融资请求存储实现
type FundRequestRepository struct {
	db *gorm.DB
}

// NewFundRequestRepository 创建融资请求存储
func NewFundRequestRepository(db *gorm.DB) *FundRequestRepository {
	return &FundRequestRepository{db: db}
}

// Create 创建融资请求
func (r *FundRequestRepository) Create(req *model.FundRequestModel) error {
	return r.db.Create(req).Error
}

// FindById 按主键查询
func (r *FundRequestRepository) FindById(id int64) (*model.FundRequestModel, error) {
	var req model.FundRequestModel
	if err := r.db.First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, logic.ErrNotFound
		}
		return nil, fmt.Errorf("查询融资请求失败: %w", err)
	}
	return &req, nil
}

// List 条件分页查询
func (r *FundRequestRepository) List(filter logic.FundRequestFilter) ([]model.FundRequestModel, int64, error) {
	query := r.db.Model(&model.FundRequestModel{})
	if filter.StartupId > 0 {
		query = query.Where("startup_id = ?", filter.StartupId)
	}
	if filter.InvestorId > 0 {
		query = query.Where("investor_id = ?", filter.InvestorId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计融资请求失败: %w", err)
	}

	var requests []model.FundRequestModel
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.PageSize).Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("查询融资请求列表失败: %w", err)
	}

	return requests, total, nil
}

// UpdateIfStatus 原子条件更新
//
// 仅当当前状态等于期望状态时更新，以 RowsAffected 判断是否命中，
// 状态机的一次性流转语义依赖该实现。
func (r *FundRequestRepository) UpdateIfStatus(id int64, expected model.FundRequestStatus, updates map[string]interface{}) (bool, error) {
	result := r.db.Model(&model.FundRequestModel{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("更新融资请求状态失败: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListCompleted 查询已完成的融资请求
func (r *FundRequestRepository) ListCompleted(startupId, investorId int64) ([]model.FundRequestModel, error) {
	query := r.db.Where("status = ?", model.FundRequestStatusCompleted)
	if startupId > 0 {
		query = query.Where("startup_id = ?", startupId)
	}
	if investorId > 0 {
		query = query.Where("investor_id = ?", investorId)
	}

	var requests []model.FundRequestModel
	if err := query.Order("completed_at ASC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("查询已完成融资请求失败: %w", err)
	}
	return requests, nil
}

// ListStalePending 查询超过给定时间仍未处理的请求（定时任务用）
func (r *FundRequestRepository) ListStalePending(cutoff time.Time) ([]model.FundRequestModel, error) {
	var requests []model.FundRequestModel
	if err := r.db.Where("status = ? AND created_at < ?", model.FundRequestStatusPending, cutoff).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("查询过期融资请求失败: %w", err)
	}
	return requests, nil
}
