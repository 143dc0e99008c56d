package main

import (
	"os"

	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/repository"
	"github.com/freshguard/internal/service"

	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"
)

const demoBindingCode = "DEMO-0001"

type demoProduct struct {
	Name              string
	SKU               string
	ShelfLifeDays     int
	LabelLanguage     string
	PrimaryLanguage   string
	SecondaryLanguage string
}

func main() {
	_ = godotenv.Load()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, gormlogger.Warn); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaultAdmin(os.Getenv("FG_DEFAULT_ADMIN_EMAIL"), os.Getenv("FG_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	brandRepo := repository.NewBrandRepository(models.DB)
	storeRepo := repository.NewStoreRepository(models.DB)
	productRepo := repository.NewProductRepository(models.DB)
	catalog := service.NewCatalogService(brandRepo, storeRepo, productRepo)
	binding := service.NewBindingCodeService(repository.NewBindingCodeRepository(models.DB), storeRepo, clock.System(), cfg.Binding.DefaultExpiresInHours)

	// 品牌
	var brand models.Brand
	if err := models.DB.Where("name = ?", "Demo Fresh").First(&brand).Error; err != nil {
		created, err := catalog.CreateBrand("Demo Fresh")
		if err != nil {
			stdLog.Fatalf("Failed to create brand: %v", err)
		}
		brand = *created
		stdLog.Printf("Created brand: %s", brand.Name)
	} else {
		stdLog.Printf("Brand already exists: %s", brand.Name)
	}

	// 门店
	var store models.Store
	if err := models.DB.Where("brand_id = ? AND name = ?", brand.ID, "Demo Downtown").First(&store).Error; err != nil {
		created, err := catalog.CreateStore(brand.ID, "Demo Downtown")
		if err != nil {
			stdLog.Fatalf("Failed to create store: %v", err)
		}
		store = *created
		stdLog.Printf("Created store: %s", store.Name)
	} else {
		stdLog.Printf("Store already exists: %s", store.Name)
	}

	// 商品
	products := []demoProduct{
		{Name: "Fresh Milk 1L", SKU: "DEMO-MILK-1L", ShelfLifeDays: 3, LabelLanguage: constants.LabelLanguageSingle},
		{Name: "Chicken Sandwich", SKU: "DEMO-SANDWICH", ShelfLifeDays: 1, LabelLanguage: constants.LabelLanguageBilingual, PrimaryLanguage: "en", SecondaryLanguage: "zh"},
		{Name: "Cut Fruit Cup", SKU: "DEMO-FRUIT", ShelfLifeDays: 2, LabelLanguage: constants.LabelLanguageSingle},
	}
	for _, item := range products {
		var existing models.Product
		if err := models.DB.Where("brand_id = ? AND name = ?", brand.ID, item.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.Name)
			continue
		}
		if _, err := catalog.CreateProduct(service.CreateProductInput{
			BrandID:           brand.ID,
			Name:              item.Name,
			SKU:               item.SKU,
			ShelfLifeDays:     item.ShelfLifeDays,
			LabelLanguage:     item.LabelLanguage,
			PrimaryLanguage:   item.PrimaryLanguage,
			SecondaryLanguage: item.SecondaryLanguage,
		}); err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", item.Name)
	}

	// 绑定码
	var code models.BindingCode
	if err := models.DB.Where("code = ?", demoBindingCode).First(&code).Error; err == nil {
		stdLog.Printf("Binding code already exists: %s", demoBindingCode)
		return
	}
	issued, err := binding.Issue(service.IssueBindingCodeInput{StoreID: store.ID, Code: demoBindingCode})
	if err != nil {
		stdLog.Fatalf("Failed to issue binding code: %v", err)
	}
	expiresAt := "never"
	if issued.ExpiresAt != nil {
		expiresAt = issued.ExpiresAt.Format("2006-01-02 15:04:05")
	}
	stdLog.Printf("Issued binding code %s for store %d, expires at %s", issued.Code, store.ID, expiresAt)
}
