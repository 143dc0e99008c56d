package repository

import (
	"errors"

	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BatchRepository 打印批次数据访问接口
type BatchRepository interface {
	GetByID(id uint) (*models.Batch, error)
	Create(batch *models.Batch) error
	CountByStore(storeID uint) (int64, error)
}

// GormBatchRepository GORM 实现
type GormBatchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建批次仓库
func NewBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBatchRepository) WithTx(tx *gorm.DB) *GormBatchRepository {
	if tx == nil {
		return r
	}
	return &GormBatchRepository{db: tx}
}

// GetByID 根据 ID 获取批次
func (r *GormBatchRepository) GetByID(id uint) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

// Create 创建批次
func (r *GormBatchRepository) Create(batch *models.Batch) error {
	return r.db.Omit(clause.Associations).Create(batch).Error
}

// CountByStore 统计门店批次数量
func (r *GormBatchRepository) CountByStore(storeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Batch{}).Where("store_id = ?", storeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
