package repository

import (
	"errors"
	"time"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const reminderInsertBatchSize = 100

// ReminderRepository 到期提醒数据访问接口
type ReminderRepository interface {
	CreateInBatches(reminders []models.Reminder) error
	ListPending(filter ReminderListFilter) ([]models.Reminder, error)
	GetByIDForStore(id, storeID uint) (*models.Reminder, error)
	MarkHandled(id, storeID uint, handledAt time.Time) (int64, error)
	CountByBatch(batchID uint) (int64, error)
}

// GormReminderRepository GORM 实现
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository 创建提醒仓库
func NewReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReminderRepository) WithTx(tx *gorm.DB) *GormReminderRepository {
	if tx == nil {
		return r
	}
	return &GormReminderRepository{db: tx}
}

// CreateInBatches 分批插入提醒
func (r *GormReminderRepository) CreateInBatches(reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).CreateInBatches(&reminders, reminderInsertBatchSize).Error
}

// ListPending 查询门店未处理提醒，按到期时间与 ID 升序
func (r *GormReminderRepository) ListPending(filter ReminderListFilter) ([]models.Reminder, error) {
	query := r.db.Model(&models.Reminder{}).
		Preload("Product").
		Where("store_id = ? AND status = ?", filter.StoreID, constants.ReminderStatusPending)
	if filter.ExpiresBefore != nil {
		query = query.Where("expires_at < ?", *filter.ExpiresBefore)
	}
	if filter.ExpiresFrom != nil {
		query = query.Where("expires_at >= ?", *filter.ExpiresFrom)
	}
	if filter.ExpiresTo != nil {
		query = query.Where("expires_at <= ?", *filter.ExpiresTo)
	}

	reminders := make([]models.Reminder, 0)
	if err := query.Order("expires_at ASC").Order("id ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// GetByIDForStore 获取属于指定门店的提醒
func (r *GormReminderRepository) GetByIDForStore(id, storeID uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.Where("id = ? AND store_id = ?", id, storeID).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

// MarkHandled 条件更新为已处理，仅当状态为 pending 时生效，返回影响行数
func (r *GormReminderRepository) MarkHandled(id, storeID uint, handledAt time.Time) (int64, error) {
	result := r.db.Model(&models.Reminder{}).
		Where("id = ? AND store_id = ? AND status = ?", id, storeID, constants.ReminderStatusPending).
		Updates(map[string]interface{}{
			"status":     constants.ReminderStatusHandled,
			"handled_at": handledAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByBatch 统计批次下提醒数量
func (r *GormReminderRepository) CountByBatch(batchID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reminder{}).Where("batch_id = ?", batchID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
