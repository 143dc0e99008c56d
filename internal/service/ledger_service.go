package service

import (
	"context"
	"strings"
	"time"

	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/repository"

	"gorm.io/gorm"
)

const (
	// defaultMaxBatchQuantity 同时是单批次数量的硬上限，配置只能调小
	defaultMaxBatchQuantity = 500
	defaultThresholdDays    = 1
)

// LedgerService 批次与提醒台账服务
type LedgerService struct {
	batchRepo        *repository.GormBatchRepository
	reminderRepo     *repository.GormReminderRepository
	logRepo          *repository.GormHandlingLogRepository
	storeRepo        repository.StoreRepository
	productRepo      repository.ProductRepository
	reportService    *ReportService
	clock            clock.Clock
	maxQuantity      int
	defaultThreshold int
}

// LedgerOptions 台账服务参数
type LedgerOptions struct {
	MaxBatchQuantity     int
	DefaultThresholdDays int
}

// NewLedgerService 创建台账服务
func NewLedgerService(
	batchRepo *repository.GormBatchRepository,
	reminderRepo *repository.GormReminderRepository,
	logRepo *repository.GormHandlingLogRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	reportService *ReportService,
	clk clock.Clock,
	opts LedgerOptions,
) *LedgerService {
	if opts.MaxBatchQuantity <= 0 || opts.MaxBatchQuantity > defaultMaxBatchQuantity {
		opts.MaxBatchQuantity = defaultMaxBatchQuantity
	}
	if opts.DefaultThresholdDays < 0 {
		opts.DefaultThresholdDays = defaultThresholdDays
	}
	return &LedgerService{
		batchRepo:        batchRepo,
		reminderRepo:     reminderRepo,
		logRepo:          logRepo,
		storeRepo:        storeRepo,
		productRepo:      productRepo,
		reportService:    reportService,
		clock:            clock.Or(clk),
		maxQuantity:      opts.MaxBatchQuantity,
		defaultThreshold: opts.DefaultThresholdDays,
	}
}

// CreateBatchInput 创建批次输入
type CreateBatchInput struct {
	StoreID   uint
	ProductID uint
	Quantity  int
	PrintedAt *time.Time
}

// CreateBatchResult 创建批次结果
type CreateBatchResult struct {
	Batch            *models.Batch
	RemindersCreated int
	Store            *models.Store
	Product          *models.Product
}

// ReminderView 提醒列表项
type ReminderView struct {
	ID          uint       `json:"id"`
	BatchID     uint       `json:"batch_id"`
	StoreID     uint       `json:"store_id"`
	ProductID   uint       `json:"product_id"`
	ProductName string     `json:"product_name"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Status      string     `json:"status"`
	IsExpired   bool       `json:"is_expired"`
	HandledAt   *time.Time `json:"handled_at"`
}

// HandleReminderInput 处理提醒输入
type HandleReminderInput struct {
	StoreID    uint
	ReminderID uint
	Reason     string
	Note       string
}

// MaxBatchQuantity 单批次最大数量
func (s *LedgerService) MaxBatchQuantity() int {
	return s.maxQuantity
}

// CreateBatch 在同一事务内创建批次与逐件提醒
func (s *LedgerService) CreateBatch(input CreateBatchInput) (*CreateBatchResult, error) {
	if input.Quantity < 1 || input.Quantity > s.maxQuantity {
		return nil, ErrBatchQuantityInvalid
	}

	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.BrandID != store.BrandID {
		return nil, ErrProductBrandMismatch
	}

	printedAt := s.clock.Now()
	if input.PrintedAt != nil && !input.PrintedAt.IsZero() {
		printedAt = input.PrintedAt.UTC()
	}
	batch := &models.Batch{
		StoreID:   store.ID,
		ProductID: product.ID,
		Quantity:  input.Quantity,
		PrintedAt: printedAt,
		ExpiresAt: clock.AddDays(printedAt, product.ShelfLifeDays),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.batchRepo.WithTx(tx).Create(batch); err != nil {
			return err
		}
		reminders := make([]models.Reminder, 0, input.Quantity)
		for i := 0; i < input.Quantity; i++ {
			reminders = append(reminders, models.Reminder{
				BatchID:   batch.ID,
				StoreID:   batch.StoreID,
				ProductID: batch.ProductID,
				ExpiresAt: batch.ExpiresAt,
				Status:    constants.ReminderStatusPending,
			})
		}
		return s.reminderRepo.WithTx(tx).CreateInBatches(reminders)
	})
	if err != nil {
		logger.Errorw("ledger_batch_create_failed",
			"store_id", store.ID,
			"product_id", product.ID,
			"quantity", input.Quantity,
			"error", err,
		)
		return nil, err
	}

	logger.Infow("ledger_batch_created",
		"batch_id", batch.ID,
		"store_id", store.ID,
		"product_id", product.ID,
		"quantity", batch.Quantity,
		"expires_at", batch.ExpiresAt,
	)
	s.invalidateReport()
	return &CreateBatchResult{
		Batch:            batch,
		RemindersCreated: input.Quantity,
		Store:            store,
		Product:          product,
	}, nil
}

// ResolveThresholdDays 返回有效的阈值天数
func (s *LedgerService) ResolveThresholdDays(thresholdDays *int) (int, error) {
	if thresholdDays == nil {
		return s.defaultThreshold, nil
	}
	if *thresholdDays < 0 {
		return 0, ErrThresholdDaysInvalid
	}
	return *thresholdDays, nil
}

// NormalizeReminderFilter 规范化提醒过滤状态，空值为 expiring
func NormalizeReminderFilter(status string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized == "" {
		return constants.ReminderFilterExpiring, nil
	}
	switch normalized {
	case constants.ReminderFilterExpiring, constants.ReminderFilterExpired, constants.ReminderFilterAll:
		return normalized, nil
	default:
		return "", ErrReminderStatusInvalid
	}
}

// ListReminders 按时间窗口列出门店未处理提醒
func (s *LedgerService) ListReminders(storeID uint, status string, thresholdDays *int) ([]ReminderView, error) {
	filterStatus, err := NormalizeReminderFilter(status)
	if err != nil {
		return nil, err
	}
	threshold, err := s.ResolveThresholdDays(thresholdDays)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	filter := repository.ReminderListFilter{StoreID: storeID}
	switch filterStatus {
	case constants.ReminderFilterExpired:
		filter.ExpiresBefore = &now
	case constants.ReminderFilterExpiring:
		until := clock.AddDays(now, threshold)
		filter.ExpiresFrom = &now
		filter.ExpiresTo = &until
	}

	reminders, err := s.reminderRepo.ListPending(filter)
	if err != nil {
		return nil, err
	}
	views := make([]ReminderView, 0, len(reminders))
	for i := range reminders {
		views = append(views, buildReminderView(&reminders[i], now))
	}
	return views, nil
}

// NormalizeHandlingReason 规范化处理原因
func NormalizeHandlingReason(reason string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(reason))
	switch normalized {
	case constants.HandlingReasonDiscarded, constants.HandlingReasonSold, constants.HandlingReasonTransferred:
		return normalized, nil
	default:
		return "", ErrHandlingReasonInvalid
	}
}

// HandleReminder 将提醒标记为已处理并写入处理日志
func (s *LedgerService) HandleReminder(input HandleReminderInput) (*models.Reminder, error) {
	reason, err := NormalizeHandlingReason(input.Reason)
	if err != nil {
		return nil, err
	}
	var note *string
	if trimmed := strings.TrimSpace(input.Note); trimmed != "" {
		note = &trimmed
	}

	var handled *models.Reminder
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		reminderRepo := s.reminderRepo.WithTx(tx)
		reminder, err := reminderRepo.GetByIDForStore(input.ReminderID, input.StoreID)
		if err != nil {
			return err
		}
		if reminder == nil {
			return ErrReminderNotFound
		}
		if reminder.Status == constants.ReminderStatusHandled {
			return ErrReminderAlreadyHandled
		}

		now := s.clock.Now()
		affected, err := reminderRepo.MarkHandled(reminder.ID, input.StoreID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrReminderAlreadyHandled
		}

		entry := &models.HandlingLog{
			ReminderID: reminder.ID,
			StoreID:    reminder.StoreID,
			ProductID:  reminder.ProductID,
			Reason:     reason,
			Note:       note,
			HandledAt:  now,
		}
		if err := s.logRepo.WithTx(tx).Create(entry); err != nil {
			return err
		}

		reminder.Status = constants.ReminderStatusHandled
		reminder.HandledAt = &now
		handled = reminder
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("ledger_reminder_handled",
		"reminder_id", handled.ID,
		"store_id", handled.StoreID,
		"reason", reason,
	)
	s.invalidateReport()
	return handled, nil
}

// ListHandlingLogs 处理日志分页查询
func (s *LedgerService) ListHandlingLogs(filter repository.HandlingLogListFilter) ([]models.HandlingLog, int64, error) {
	if strings.TrimSpace(filter.Reason) != "" {
		reason, err := NormalizeHandlingReason(filter.Reason)
		if err != nil {
			return nil, 0, err
		}
		filter.Reason = reason
	}
	return s.logRepo.List(filter)
}

func (s *LedgerService) invalidateReport() {
	if s.reportService == nil {
		return
	}
	if err := s.reportService.Invalidate(context.Background()); err != nil {
		logger.Warnw("report_cache_invalidate_failed", "error", err)
	}
}

func buildReminderView(reminder *models.Reminder, now time.Time) ReminderView {
	view := ReminderView{
		ID:        reminder.ID,
		BatchID:   reminder.BatchID,
		StoreID:   reminder.StoreID,
		ProductID: reminder.ProductID,
		ExpiresAt: reminder.ExpiresAt,
		Status:    reminder.Status,
		IsExpired: reminder.ExpiresAt.Before(now),
		HandledAt: reminder.HandledAt,
	}
	if reminder.Product != nil {
		view.ProductName = reminder.Product.Name
	}
	return view
}
