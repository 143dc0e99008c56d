package provider

import (
	"time"

	"github.com/freshguard/internal/authz"
	"github.com/freshguard/internal/cache"
	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/printer"
	"github.com/freshguard/internal/queue"
	"github.com/freshguard/internal/repository"
	"github.com/freshguard/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	Clock       clock.Clock
	QueueClient *queue.Client
	PrinterSink printer.Sink

	// Repositories
	UserRepo        *repository.GormUserRepository
	BrandRepo       *repository.GormBrandRepository
	StoreRepo       *repository.GormStoreRepository
	ProductRepo     *repository.GormProductRepository
	BindingCodeRepo *repository.GormBindingCodeRepository
	BatchRepo       *repository.GormBatchRepository
	ReminderRepo    *repository.GormReminderRepository
	HandlingLogRepo *repository.GormHandlingLogRepository
	ReportRepo      *repository.GormReportRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	CatalogService     *service.CatalogService
	BindingCodeService *service.BindingCodeService
	ReportService      *service.ReportService
	LedgerService      *service.LedgerService
	PrintService       *service.PrintService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		Clock:       clock.System(),
		QueueClient: queueClient,
		PrinterSink: printer.NewSink(cfg.Printer),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.BindingCodeRepo = repository.NewBindingCodeRepository(db)
	c.BatchRepo = repository.NewBatchRepository(db)
	c.ReminderRepo = repository.NewReminderRepository(db)
	c.HandlingLogRepo = repository.NewHandlingLogRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	cacheTTL := time.Duration(c.Config.Report.CacheTTLSeconds) * time.Second
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.Clock)
	c.CatalogService = service.NewCatalogService(c.BrandRepo, c.StoreRepo, c.ProductRepo)
	c.BindingCodeService = service.NewBindingCodeService(c.BindingCodeRepo, c.StoreRepo, c.Clock, c.Config.Binding.DefaultExpiresInHours)
	c.ReportService = service.NewReportService(c.ReportRepo, c.Clock, cacheTTL)
	c.LedgerService = service.NewLedgerService(
		c.BatchRepo,
		c.ReminderRepo,
		c.HandlingLogRepo,
		c.StoreRepo,
		c.ProductRepo,
		c.ReportService,
		c.Clock,
		service.LedgerOptions{
			MaxBatchQuantity:     c.Config.Ledger.MaxBatchQuantity,
			DefaultThresholdDays: c.Config.Ledger.DefaultThresholdDays,
		},
	)
	c.PrintService = service.NewPrintService(c.QueueClient, c.PrinterSink)
}
