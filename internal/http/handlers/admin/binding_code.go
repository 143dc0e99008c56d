package admin

import (
	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

// IssueBindingCodeRequest 签发绑定码请求
type IssueBindingCodeRequest struct {
	StoreID        uint     `json:"store_id" binding:"required"`
	ExpiresInHours *float64 `json:"expires_in_hours"`
	Code           string   `json:"code"`
}

// GetAdminBindingCodes 绑定码列表
func (h *Handler) GetAdminBindingCodes(c *gin.Context) {
	codes, err := h.BindingCodeService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, codes)
}

// IssueAdminBindingCode 签发绑定码
func (h *Handler) IssueAdminBindingCode(c *gin.Context) {
	var req IssueBindingCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	code, err := h.BindingCodeService.Issue(service.IssueBindingCodeInput{
		StoreID:        req.StoreID,
		ExpiresInHours: req.ExpiresInHours,
		Code:           req.Code,
	})
	if err != nil {
		respondWithMappedError(c, err, bindingCodeErrorRules)
		return
	}
	requestLog(c).Infow("admin_binding_code_issued", "binding_code_id", code.ID, "store_id", code.StoreID)
	response.Success(c, code)
}
