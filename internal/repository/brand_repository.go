package repository

import (
	"errors"

	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌数据访问接口
type BrandRepository interface {
	GetByID(id uint) (*models.Brand, error)
	List() ([]models.Brand, error)
	Create(brand *models.Brand) error
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// GetByID 根据 ID 获取品牌
func (r *GormBrandRepository) GetByID(id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

// List 获取品牌列表
func (r *GormBrandRepository) List() ([]models.Brand, error) {
	brands := make([]models.Brand, 0)
	if err := r.db.Order("name ASC").Order("id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// Create 创建品牌
func (r *GormBrandRepository) Create(brand *models.Brand) error {
	return r.db.Create(brand).Error
}
