package store

import (
	"github.com/freshguard/internal/cache"
	"github.com/freshguard/internal/http/response"

	"github.com/gin-gonic/gin"
)

// BindRequest 终端绑定请求
type BindRequest struct {
	Code     string `json:"code"`
	DeviceID string `json:"device_id"`
}

// BindResponse 终端绑定响应
type BindResponse struct {
	Token       string      `json:"token"`
	ExpiresAt   string      `json:"expires_at"`
	Store       interface{} `json:"store"`
	BindingCode interface{} `json:"binding_code"`
}

// BindStore 使用一次性绑定码绑定门店终端
func (h *Handler) BindStore(c *gin.Context) {
	var req BindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.BindingCodeService.Consume(req.Code, req.DeviceID)
	if err != nil {
		respondWithMappedError(c, err, bindErrorRules)
		return
	}

	token, expiresAt, err := h.AuthService.GenerateStoreJWT(result.Store, result.BindingCode)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if err := cache.SetStoreAuthState(c.Request.Context(), cache.BuildStoreAuthState(result.Store)); err != nil {
		requestLog(c).Warnw("store_auth_cache_set_failed", "store_id", result.Store.ID, "error", err)
	}

	requestLog(c).Infow("store_terminal_bound",
		"store_id", result.Store.ID,
		"binding_code_id", result.BindingCode.ID,
	)
	response.Success(c, BindResponse{
		Token:       token,
		ExpiresAt:   expiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Store:       result.Store,
		BindingCode: result.BindingCode,
	})
}

// GetStoreMe 当前终端身份
func (h *Handler) GetStoreMe(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	state, err := h.CatalogService.ResolveStoreState(c.Request.Context(), storeID)
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules)
		return
	}
	response.Success(c, gin.H{
		"store_id":   state.StoreID,
		"brand_id":   state.BrandID,
		"store_name": state.StoreName,
		"brand_name": state.BrandName,
		"device_id":  getDeviceID(c),
	})
}

// GetStoreProducts 门店所属品牌的商品
func (h *Handler) GetStoreProducts(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	products, err := h.CatalogService.ListStoreProducts(storeID)
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules)
		return
	}
	response.Success(c, products)
}
