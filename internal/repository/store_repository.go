package repository

import (
	"errors"
	"strings"

	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreRepository 门店数据访问接口
type StoreRepository interface {
	GetByID(id uint) (*models.Store, error)
	List(filter StoreListFilter) ([]models.Store, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建门店仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStoreRepository) WithTx(tx *gorm.DB) *GormStoreRepository {
	if tx == nil {
		return r
	}
	return &GormStoreRepository{db: tx}
}

// GetByID 根据 ID 获取门店（含品牌）
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.Preload("Brand").First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// List 门店列表
func (r *GormStoreRepository) List(filter StoreListFilter) ([]models.Store, error) {
	query := r.db.Model(&models.Store{}).Preload("Brand")
	if filter.BrandID != 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if keyword := strings.TrimSpace(filter.Search); keyword != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name"})
		query = query.Where(condition, repeatLikeArgs("%"+keyword+"%", argCount)...)
	}

	stores := make([]models.Store, 0)
	if err := query.Order("brand_id ASC").Order("name ASC").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Create 创建门店
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Omit(clause.Associations).Create(store).Error
}

// Update 更新门店（不级联关联）
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Omit(clause.Associations).Save(store).Error
}
