package repository

import (
	"time"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type ReportRepository interface {
	ExpiredHandling(now time.Time) ([]ExpiredHandlingRow, error)
	CountExpiredBetween(from, to time.Time) (int64, error)
}

// ExpiredHandlingRow 门店+商品维度的过期处理统计
type ExpiredHandlingRow struct {
	StoreID               uint
	StoreName             string
	ProductID             uint
	ProductName           string
	ExpiredTotalCount     int64
	ExpiredHandledCount   int64
	ExpiredUnhandledCount int64
}

// GormReportRepository GORM 实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ExpiredHandling 统计 now 之前已到期的提醒，仅返回至少有一条过期提醒的分组
func (r *GormReportRepository) ExpiredHandling(now time.Time) ([]ExpiredHandlingRow, error) {
	rows := make([]ExpiredHandlingRow, 0)
	err := r.db.Table("reminders AS r").
		Select(`r.store_id AS store_id,
			s.name AS store_name,
			r.product_id AS product_id,
			p.name AS product_name,
			COUNT(r.id) AS expired_total_count,
			COALESCE(SUM(CASE WHEN r.status = ? THEN 1 ELSE 0 END), 0) AS expired_handled_count,
			COALESCE(SUM(CASE WHEN r.status = ? THEN 1 ELSE 0 END), 0) AS expired_unhandled_count`,
			constants.ReminderStatusHandled, constants.ReminderStatusPending).
		Joins("JOIN stores AS s ON s.id = r.store_id").
		Joins("JOIN products AS p ON p.id = r.product_id").
		Where("r.expires_at < ?", now).
		Group("r.store_id, s.name, r.product_id, p.name").
		Order("r.store_id ASC").
		Order("r.product_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountExpiredBetween 统计 [from, to) 区间内跨过到期点的提醒数
func (r *GormReportRepository) CountExpiredBetween(from, to time.Time) (int64, error) {
	var count int64
	if !from.Before(to) {
		return 0, nil
	}
	err := r.db.Model(&models.Reminder{}).
		Where("expires_at >= ? AND expires_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
