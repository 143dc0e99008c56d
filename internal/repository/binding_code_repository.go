package repository

import (
	"errors"
	"time"

	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BindingCodeRepository 绑定码数据访问接口
type BindingCodeRepository interface {
	GetByCode(code string) (*models.BindingCode, error)
	List() ([]models.BindingCode, error)
	Create(code *models.BindingCode) error
	MarkUsed(id uint, usedAt time.Time, deviceID *string) (int64, error)
}

// GormBindingCodeRepository GORM 实现
type GormBindingCodeRepository struct {
	db *gorm.DB
}

// NewBindingCodeRepository 创建绑定码仓库
func NewBindingCodeRepository(db *gorm.DB) *GormBindingCodeRepository {
	return &GormBindingCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormBindingCodeRepository) WithTx(tx *gorm.DB) *GormBindingCodeRepository {
	if tx == nil {
		return r
	}
	return &GormBindingCodeRepository{db: tx}
}

// GetByCode 根据绑定码获取记录
func (r *GormBindingCodeRepository) GetByCode(code string) (*models.BindingCode, error) {
	var record models.BindingCode
	if err := r.db.Where("code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List 绑定码列表，最新在前
func (r *GormBindingCodeRepository) List() ([]models.BindingCode, error) {
	codes := make([]models.BindingCode, 0)
	err := r.db.Preload("Store").Preload("Brand").
		Order("created_at DESC").Order("id DESC").
		Find(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// Create 创建绑定码
func (r *GormBindingCodeRepository) Create(code *models.BindingCode) error {
	return r.db.Omit(clause.Associations).Create(code).Error
}

// MarkUsed 条件更新为已使用，仅当 used_at 为空时生效，返回影响行数
func (r *GormBindingCodeRepository) MarkUsed(id uint, usedAt time.Time, deviceID *string) (int64, error) {
	result := r.db.Model(&models.BindingCode{}).
		Where("id = ? AND used_at IS NULL", id).
		Updates(map[string]interface{}{
			"used_at":         usedAt,
			"bound_device_id": deviceID,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
