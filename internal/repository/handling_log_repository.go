package repository

import (
	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HandlingLogRepository 处理日志数据访问接口
type HandlingLogRepository interface {
	Create(log *models.HandlingLog) error
	List(filter HandlingLogListFilter) ([]models.HandlingLog, int64, error)
}

// GormHandlingLogRepository GORM 实现
type GormHandlingLogRepository struct {
	db *gorm.DB
}

// NewHandlingLogRepository 创建处理日志仓库
func NewHandlingLogRepository(db *gorm.DB) *GormHandlingLogRepository {
	return &GormHandlingLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormHandlingLogRepository) WithTx(tx *gorm.DB) *GormHandlingLogRepository {
	if tx == nil {
		return r
	}
	return &GormHandlingLogRepository{db: tx}
}

// Create 追加处理日志
func (r *GormHandlingLogRepository) Create(log *models.HandlingLog) error {
	return r.db.Omit(clause.Associations).Create(log).Error
}

// List 处理日志分页列表，最新在前
func (r *GormHandlingLogRepository) List(filter HandlingLogListFilter) ([]models.HandlingLog, int64, error) {
	query := r.db.Model(&models.HandlingLog{})
	if filter.StoreID != 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Reason != "" {
		query = query.Where("reason = ?", filter.Reason)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	logs := make([]models.HandlingLog, 0)
	if err := query.Order("handled_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
