package service

import (
	"context"
	"time"

	"github.com/freshguard/internal/cache"
	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/repository"

	"github.com/shopspring/decimal"
)


// ReportService 过期处理报表服务
// 说明：仅做聚合与格式化，缓存为可选能力。
type ReportService struct {
	repo     repository.ReportRepository
	clock    clock.Clock
	cacheTTL time.Duration
}

// NewReportService 创建报表服务
func NewReportService(repo repository.ReportRepository, clk clock.Clock, cacheTTL time.Duration) *ReportService {
	return &ReportService{repo: repo, clock: clock.Or(clk), cacheTTL: cacheTTL}
}

// ReportQueryInput 报表查询输入
type ReportQueryInput struct {
	ForceRefresh bool
}

// ExpiredHandlingRow 报表行
type ExpiredHandlingRow struct {
	StoreID               uint   `json:"store_id"`
	StoreName             string `json:"store_name"`
	ProductID             uint   `json:"product_id"`
	ProductName           string `json:"product_name"`
	ExpiredTotalCount     int64  `json:"expired_total_count"`
	ExpiredHandledCount   int64  `json:"expired_handled_count"`
	ExpiredUnhandledCount int64  `json:"expired_unhandled_count"`
	HandledRate           string `json:"handled_rate"`
}

// ExpiredHandlingReport 过期处理报表
type ExpiredHandlingReport struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []ExpiredHandlingRow `json:"rows"`
}

func reportCacheKey() string {
	return cache.Key(cache.NamespaceReport, "expired_handling")
}

// CacheEnabled 报表缓存是否生效
func (s *ReportService) CacheEnabled() bool {
	return s != nil && s.cacheTTL > 0 && cache.Enabled()
}

// ExpiredHandling 获取门店+商品维度的过期处理统计
func (s *ReportService) ExpiredHandling(ctx context.Context, input ReportQueryInput) (*ExpiredHandlingReport, error) {
	if s.CacheEnabled() && !input.ForceRefresh {
		var cached ExpiredHandlingReport
		hit, cacheErr := cache.GetJSON(ctx, reportCacheKey(), &cached)
		if cacheErr == nil && hit && s.cachedReportCurrent(&cached, s.clock.Now()) {
			return &cached, nil
		}
	}

	now := s.clock.Now()
	rows, err := s.repo.ExpiredHandling(now)
	if err != nil {
		return nil, err
	}
	report := &ExpiredHandlingReport{
		GeneratedAt: now,
		Rows:        make([]ExpiredHandlingRow, 0, len(rows)),
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, ExpiredHandlingRow{
			StoreID:               row.StoreID,
			StoreName:             row.StoreName,
			ProductID:             row.ProductID,
			ProductName:           row.ProductName,
			ExpiredTotalCount:     row.ExpiredTotalCount,
			ExpiredHandledCount:   row.ExpiredHandledCount,
			ExpiredUnhandledCount: row.ExpiredUnhandledCount,
			HandledRate:           handledRate(row.ExpiredHandledCount, row.ExpiredTotalCount),
		})
	}

	if s.CacheEnabled() {
		_ = cache.SetJSON(ctx, reportCacheKey(), report, s.cacheTTL)
	}
	return report, nil
}

// cachedReportCurrent 缓存生成后若有提醒跨过到期点则视为失效
func (s *ReportService) cachedReportCurrent(cached *ExpiredHandlingReport, now time.Time) bool {
	if cached == nil || cached.GeneratedAt.IsZero() || now.Before(cached.GeneratedAt) {
		return false
	}
	crossed, err := s.repo.CountExpiredBetween(cached.GeneratedAt, now)
	if err != nil {
		return false
	}
	return crossed == 0
}

// Invalidate 清除报表缓存
func (s *ReportService) Invalidate(ctx context.Context) error {
	if !s.CacheEnabled() {
		return nil
	}
	return cache.Del(ctx, reportCacheKey())
}

// Warm 重新计算并写入缓存
func (s *ReportService) Warm(ctx context.Context) error {
	if !s.CacheEnabled() {
		return nil
	}
	_, err := s.ExpiredHandling(ctx, ReportQueryInput{ForceRefresh: true})
	return err
}

func handledRate(handled, total int64) string {
	if total <= 0 {
		return decimal.Zero.StringFixed(4)
	}
	return decimal.NewFromInt(handled).DivRound(decimal.NewFromInt(total), 4).StringFixed(4)
}
