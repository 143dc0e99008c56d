package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/freshguard/internal/http/handlers/shared"
	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/repository"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

var handlingLogErrorRules = []handlershared.MappedError{
	{Target: service.ErrHandlingReasonInvalid, Code: response.CodeBadRequest, Key: "error.handling_reason_invalid"},
}

// GetExpiredHandlingReport 过期处理统计报表
func (h *Handler) GetExpiredHandlingReport(c *gin.Context) {
	forceRefresh := false
	if raw := strings.TrimSpace(c.Query("force_refresh")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		forceRefresh = parsed
	}

	report, err := h.ReportService.ExpiredHandling(c.Request.Context(), service.ReportQueryInput{ForceRefresh: forceRefresh})
	if err != nil {
		respondError(c, response.CodeInternal, "error.report_failed", err)
		return
	}
	response.Success(c, report)
}

// GetHandlingLogs 处理日志分页列表
func (h *Handler) GetHandlingLogs(c *gin.Context) {
	page, pageSize := parsePageQuery(c)

	storeID, ok := parseOptionalUintQuery(c, "store_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	productID, ok := parseOptionalUintQuery(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	logs, total, err := h.LedgerService.ListHandlingLogs(repository.HandlingLogListFilter{
		Page:      page,
		PageSize:  pageSize,
		StoreID:   storeID,
		ProductID: productID,
		Reason:    c.Query("reason"),
	})
	if err != nil {
		respondWithMappedError(c, err, handlingLogErrorRules)
		return
	}

	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}

const (
	defaultHandlingLogPageSize = 20
	maxHandlingLogPageSize     = 100
)

// parsePageQuery 非法或缺省的分页参数回落到默认值
func parsePageQuery(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(strings.TrimSpace(c.Query("page_size")))
	if err != nil || pageSize <= 0 {
		pageSize = defaultHandlingLogPageSize
	}
	if pageSize > maxHandlingLogPageSize {
		pageSize = maxHandlingLogPageSize
	}
	return page, pageSize
}
