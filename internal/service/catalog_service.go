package service

import (
	"context"
	"strings"

	"github.com/freshguard/internal/cache"
	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/repository"
)

const maxPrinterPort = 65535

// 可清空的打印机字段
const (
	PrinterFieldName    = "printer_name"
	PrinterFieldModel   = "printer_model"
	PrinterFieldAddress = "printer_address"
	PrinterFieldPort    = "printer_port"
	PrinterFieldDPI     = "printer_dpi"
	PrinterFieldWidth   = "label_width_mm"
)

// CatalogService 品牌、门店、商品目录服务
type CatalogService struct {
	brandRepo   repository.BrandRepository
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(brandRepo repository.BrandRepository, storeRepo repository.StoreRepository, productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{
		brandRepo:   brandRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
	}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	BrandID           uint
	Name              string
	SKU               string
	ShelfLifeDays     int
	LabelLanguage     string
	PrimaryLanguage   string
	SecondaryLanguage string
}

// PrinterSettingsPatch 打印机设置补丁
// 未提供的字段保持原值，清空需在 ClearFields 中显式声明
type PrinterSettingsPatch struct {
	PrinterName    *string
	PrinterModel   *string
	PrinterAddress *string
	PrinterPort    *int
	PrinterDPI     *int
	LabelWidthMM   *int
	ClearFields    []string
}

// CreateBrand 创建品牌
func (s *CatalogService) CreateBrand(name string) (*models.Brand, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return nil, ErrBrandNameRequired
	}
	brand := &models.Brand{Name: normalized}
	if err := s.brandRepo.Create(brand); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrBrandExists
		}
		return nil, err
	}
	logger.Infow("catalog_brand_created", "brand_id", brand.ID)
	return brand, nil
}

// ListBrands 品牌列表
func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	return s.brandRepo.List()
}

// CreateStore 创建门店
func (s *CatalogService) CreateStore(brandID uint, name string) (*models.Store, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return nil, ErrStoreNameRequired
	}
	brand, err := s.brandRepo.GetByID(brandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	width := constants.DefaultLabelWidthMM
	store := &models.Store{
		BrandID:      brand.ID,
		Name:         normalized,
		LabelWidthMM: &width,
	}
	if err := s.storeRepo.Create(store); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrStoreExists
		}
		return nil, err
	}
	store.Brand = brand
	logger.Infow("catalog_store_created", "store_id", store.ID, "brand_id", brand.ID)
	return store, nil
}

// ListStores 门店列表
func (s *CatalogService) ListStores(filter repository.StoreListFilter) ([]models.Store, error) {
	return s.storeRepo.List(filter)
}

// GetStore 获取门店
func (s *CatalogService) GetStore(id uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// UpdatePrinterSettings 更新门店打印机设置
func (s *CatalogService) UpdatePrinterSettings(storeID uint, patch PrinterSettingsPatch) (*models.Store, error) {
	clear := make(map[string]bool, len(patch.ClearFields))
	for _, field := range patch.ClearFields {
		normalized := strings.ToLower(strings.TrimSpace(field))
		switch normalized {
		case PrinterFieldName, PrinterFieldModel, PrinterFieldAddress, PrinterFieldPort, PrinterFieldDPI, PrinterFieldWidth:
			clear[normalized] = true
		default:
			return nil, ErrPrinterSettingInvalid
		}
	}
	for _, value := range []*string{patch.PrinterName, patch.PrinterModel, patch.PrinterAddress} {
		if value != nil && strings.TrimSpace(*value) == "" {
			return nil, ErrPrinterSettingInvalid
		}
	}
	if patch.PrinterPort != nil && (*patch.PrinterPort <= 0 || *patch.PrinterPort > maxPrinterPort) {
		return nil, ErrPrinterSettingInvalid
	}
	if patch.PrinterDPI != nil && *patch.PrinterDPI <= 0 {
		return nil, ErrPrinterSettingInvalid
	}
	if patch.LabelWidthMM != nil && *patch.LabelWidthMM <= 0 {
		return nil, ErrPrinterSettingInvalid
	}

	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	store.PrinterName = patchString(store.PrinterName, patch.PrinterName, clear[PrinterFieldName])
	store.PrinterModel = patchString(store.PrinterModel, patch.PrinterModel, clear[PrinterFieldModel])
	store.PrinterAddress = patchString(store.PrinterAddress, patch.PrinterAddress, clear[PrinterFieldAddress])
	store.PrinterPort = patchInt(store.PrinterPort, patch.PrinterPort, clear[PrinterFieldPort])
	store.PrinterDPI = patchInt(store.PrinterDPI, patch.PrinterDPI, clear[PrinterFieldDPI])
	store.LabelWidthMM = patchInt(store.LabelWidthMM, patch.LabelWidthMM, clear[PrinterFieldWidth])

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	logger.Infow("catalog_printer_settings_updated", "store_id", store.ID)
	return store, nil
}

// CreateProduct 创建商品
func (s *CatalogService) CreateProduct(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if input.ShelfLifeDays <= 0 {
		return nil, ErrShelfLifeInvalid
	}
	labelLanguage := strings.ToLower(strings.TrimSpace(input.LabelLanguage))
	if labelLanguage == "" {
		labelLanguage = constants.LabelLanguageSingle
	}
	if labelLanguage != constants.LabelLanguageSingle && labelLanguage != constants.LabelLanguageBilingual {
		return nil, ErrLabelLanguageInvalid
	}
	primary := strings.ToLower(strings.TrimSpace(input.PrimaryLanguage))
	if primary == "" {
		primary = constants.DefaultPrimaryLanguage
	}
	secondary := optionalString(strings.ToLower(strings.TrimSpace(input.SecondaryLanguage)))
	if labelLanguage == constants.LabelLanguageBilingual {
		if secondary == nil {
			return nil, ErrSecondaryLanguageNeeded
		}
		if *secondary == primary {
			return nil, ErrLanguagesIdentical
		}
	}

	brand, err := s.brandRepo.GetByID(input.BrandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	product := &models.Product{
		BrandID:           brand.ID,
		Name:              name,
		SKU:               optionalString(strings.TrimSpace(input.SKU)),
		ShelfLifeDays:     input.ShelfLifeDays,
		LabelLanguage:     labelLanguage,
		PrimaryLanguage:   primary,
		SecondaryLanguage: secondary,
	}
	if err := s.productRepo.Create(product); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrProductExists
		}
		return nil, err
	}
	product.Brand = brand
	logger.Infow("catalog_product_created", "product_id", product.ID, "brand_id", brand.ID)
	return product, nil
}

// ListProducts 商品列表，可按品牌过滤
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// ListStoreProducts 门店所属品牌的商品
func (s *CatalogService) ListStoreProducts(storeID uint) ([]models.Product, error) {
	store, err := s.GetStore(storeID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.List(repository.ProductListFilter{BrandID: store.BrandID})
}

// ResolveStoreState 获取门店终端鉴权快照，优先读缓存
func (s *CatalogService) ResolveStoreState(ctx context.Context, storeID uint) (*cache.StoreAuthState, error) {
	if state, hit, err := cache.GetStoreAuthState(ctx, storeID); err == nil && hit {
		return state, nil
	}
	store, err := s.GetStore(storeID)
	if err != nil {
		return nil, err
	}
	state := cache.BuildStoreAuthState(store)
	_ = cache.SetStoreAuthState(ctx, state)
	return state, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func patchString(current, next *string, clear bool) *string {
	if clear {
		return nil
	}
	if next == nil {
		return current
	}
	value := strings.TrimSpace(*next)
	return &value
}

func patchInt(current, next *int, clear bool) *int {
	if clear {
		return nil
	}
	if next == nil {
		return current
	}
	value := *next
	return &value
}
