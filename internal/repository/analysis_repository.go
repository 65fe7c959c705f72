package repository

import (
	"errors"
	"fmt"

	"github.com/venturebridge/vbs/internal/logic"
	"github.com/venturebridge/vbs/internal/model"
	"gorm.io/gorm"
)

// AnalysisRepository 分析快照存储实现
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository 创建分析快照存储
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create 保存分析快照
func (r *AnalysisRepository) Create(analysis *model.AnalysisModel) error {
	return r.db.Create(analysis).Error
}

// FindById 按主键查询
func (r *AnalysisRepository) FindById(id int64) (*model.AnalysisModel, error) {
	var analysis model.AnalysisModel
	if err := r.db.First(&analysis, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, logic.ErrNotFound
		}
		return nil, fmt.Errorf("查询分析快照失败: %w", err)
	}
	return &analysis, nil
}

// ListByStartup 查询创业方的历史快照
func (r *AnalysisRepository) ListByStartup(startupId int64, page, pageSize int) ([]model.AnalysisModel, int64, error) {
	query := r.db.Model(&model.AnalysisModel{}).Where("startup_id = ?", startupId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计分析快照失败: %w", err)
	}

	var analyses []model.AnalysisModel
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&analyses).Error; err != nil {
		return nil, 0, fmt.Errorf("查询分析快照列表失败: %w", err)
	}

	return analyses, total, nil
}
