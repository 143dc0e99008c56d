package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var fixtureNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type serviceFixture struct {
	db      *gorm.DB
	clock   *clock.Fixed
	brand   *models.Brand
	store   *models.Store
	product *models.Product
	catalog *CatalogService
	ledger  *LedgerService
	binding *BindingCodeService
	report  *ReportService
	repos   serviceFixtureRepos
}

type serviceFixtureRepos struct {
	store       *repository.GormStoreRepository
	product     *repository.GormProductRepository
	brand       *repository.GormBrandRepository
	batch       *repository.GormBatchRepository
	reminder    *repository.GormReminderRepository
	handlingLog *repository.GormHandlingLogRepository
	bindingCode *repository.GormBindingCodeRepository
}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(models.SQLiteDSN(dsn)), models.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func setupServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := setupServiceTestDB(t)
	clk := clock.NewFixed(fixtureNow)

	repos := serviceFixtureRepos{
		store:       repository.NewStoreRepository(db),
		product:     repository.NewProductRepository(db),
		brand:       repository.NewBrandRepository(db),
		batch:       repository.NewBatchRepository(db),
		reminder:    repository.NewReminderRepository(db),
		handlingLog: repository.NewHandlingLogRepository(db),
		bindingCode: repository.NewBindingCodeRepository(db),
	}
	report := NewReportService(repository.NewReportRepository(db), clk, 0)
	f := &serviceFixture{
		db:      db,
		clock:   clk,
		repos:   repos,
		report:  report,
		catalog: NewCatalogService(repos.brand, repos.store, repos.product),
		ledger: NewLedgerService(repos.batch, repos.reminder, repos.handlingLog, repos.store, repos.product, report, clk, LedgerOptions{
			MaxBatchQuantity:     500,
			DefaultThresholdDays: 1,
		}),
		binding: NewBindingCodeService(repos.bindingCode, repos.store, clk, 24),
	}

	brand, err := f.catalog.CreateBrand("Acme Fresh")
	if err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	store, err := f.catalog.CreateStore(brand.ID, "Central")
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	product, err := f.catalog.CreateProduct(CreateProductInput{
		BrandID:       brand.ID,
		Name:          "Fresh Milk",
		SKU:           "MILK-1L",
		ShelfLifeDays: 1,
		LabelLanguage: constants.LabelLanguageSingle,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	f.brand, f.store, f.product = brand, store, product
	return f
}

func (f *serviceFixture) createBatch(t *testing.T, quantity int, printedAt time.Time) *CreateBatchResult {
	t.Helper()
	result, err := f.ledger.CreateBatch(CreateBatchInput{
		StoreID:   f.store.ID,
		ProductID: f.product.ID,
		Quantity:  quantity,
		PrintedAt: &printedAt,
	})
	if err != nil {
		t.Fatalf("create batch failed: %v", err)
	}
	return result
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return count
}

func intPtr(v int) *int {
	return &v
}
