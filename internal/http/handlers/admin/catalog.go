package admin

import (
	"encoding/json"
	"strings"

	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/repository"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBrandRequest 创建品牌请求
type CreateBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateStoreRequest 创建门店请求
type CreateStoreRequest struct {
	BrandID uint   `json:"brand_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	BrandID           uint   `json:"brand_id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	SKU               string `json:"sku"`
	ShelfLifeDays     int    `json:"shelf_life_days"`
	LabelLanguage     string `json:"label_language"`
	PrimaryLanguage   string `json:"primary_language"`
	SecondaryLanguage string `json:"secondary_language"`
}

// PrinterSettingsRequest 打印机设置补丁
// 缺省字段保持原值，清空字段需列入 clear_fields
type PrinterSettingsRequest struct {
	PrinterName    *string      `json:"printer_name"`
	PrinterModel   *string      `json:"printer_model"`
	PrinterAddress *string      `json:"printer_address"`
	PrinterPort    *json.Number `json:"printer_port"`
	PrinterDPI     *json.Number `json:"printer_dpi"`
	LabelWidthMM   *json.Number `json:"label_width_mm"`
	ClearFields    []string     `json:"clear_fields"`
}

// GetAdminBrands 品牌列表
func (h *Handler) GetAdminBrands(c *gin.Context) {
	brands, err := h.CatalogService.ListBrands()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, brands)
}

// CreateAdminBrand 创建品牌
func (h *Handler) CreateAdminBrand(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	brand, err := h.CatalogService.CreateBrand(req.Name)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules)
		return
	}
	response.Success(c, brand)
}

// GetAdminStores 门店列表
func (h *Handler) GetAdminStores(c *gin.Context) {
	brandID, ok := parseOptionalUintQuery(c, "brand_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	stores, err := h.CatalogService.ListStores(repository.StoreListFilter{
		BrandID: brandID,
		Search:  strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, stores)
}

// CreateAdminStore 创建门店
func (h *Handler) CreateAdminStore(c *gin.Context) {
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	store, err := h.CatalogService.CreateStore(req.BrandID, req.Name)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules)
		return
	}
	response.Success(c, store)
}

// UpdateAdminStorePrinterSettings 更新门店打印机设置
func (h *Handler) UpdateAdminStorePrinterSettings(c *gin.Context) {
	storeID, ok := parseUintParam(c.Param("id"))
	if !ok {
		respondError(c, response.CodeBadRequest, "error.store_id_invalid", nil)
		return
	}
	var req PrinterSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.printer_setting_invalid", nil)
		return
	}
	store, err := h.CatalogService.UpdatePrinterSettings(storeID, patch)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules)
		return
	}
	response.Success(c, store)
}

// GetAdminProducts 商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	brandID, ok := parseOptionalUintQuery(c, "brand_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	products, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		BrandID: brandID,
		Search:  strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, products)
}

// CreateAdminProduct 创建商品
func (h *Handler) CreateAdminProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.CatalogService.CreateProduct(service.CreateProductInput{
		BrandID:           req.BrandID,
		Name:              req.Name,
		SKU:               req.SKU,
		ShelfLifeDays:     req.ShelfLifeDays,
		LabelLanguage:     req.LabelLanguage,
		PrimaryLanguage:   req.PrimaryLanguage,
		SecondaryLanguage: req.SecondaryLanguage,
	})
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules)
		return
	}
	response.Success(c, product)
}

func (r PrinterSettingsRequest) toPatch() (service.PrinterSettingsPatch, error) {
	patch := service.PrinterSettingsPatch{
		PrinterName:    r.PrinterName,
		PrinterModel:   r.PrinterModel,
		PrinterAddress: r.PrinterAddress,
		ClearFields:    r.ClearFields,
	}
	var err error
	if patch.PrinterPort, err = parseOptionalInt(r.PrinterPort); err != nil {
		return patch, err
	}
	if patch.PrinterDPI, err = parseOptionalInt(r.PrinterDPI); err != nil {
		return patch, err
	}
	if patch.LabelWidthMM, err = parseOptionalInt(r.LabelWidthMM); err != nil {
		return patch, err
	}
	return patch, nil
}

func parseOptionalInt(raw *json.Number) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	value, err := raw.Int64()
	if err != nil {
		return nil, err
	}
	parsed := int(value)
	return &parsed, nil
}
