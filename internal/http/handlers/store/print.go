package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/i18n"
	"github.com/freshguard/internal/label"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

// PrintRequest 打印批次请求
type PrintRequest struct {
	ProductID uint        `json:"product_id" binding:"required"`
	Quantity  json.Number `json:"quantity"`
	PrintedAt *time.Time  `json:"printed_at"`
}

// PrintResponse 打印批次响应
type PrintResponse struct {
	Batch            interface{}            `json:"batch"`
	RemindersCreated int                    `json:"reminders_created"`
	Label            label.Label            `json:"label"`
	PrinterSettings  label.PrinterSettings  `json:"printer_settings"`
	PrintJob         service.PrintJobStatus `json:"print_job"`
}

// PrintBatch 创建批次、逐件提醒并投递标签
func (h *Handler) PrintBatch(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	var req PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	quantity, err := req.Quantity.Int64()
	if err != nil || quantity < 1 || quantity > int64(h.LedgerService.MaxBatchQuantity()) {
		h.respondQuantityInvalid(c)
		return
	}

	result, err := h.LedgerService.CreateBatch(service.CreateBatchInput{
		StoreID:   storeID,
		ProductID: req.ProductID,
		Quantity:  int(quantity),
		PrintedAt: req.PrintedAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrBatchQuantityInvalid) {
			h.respondQuantityInvalid(c)
			return
		}
		respondWithMappedError(c, err, ledgerErrorRules)
		return
	}

	settings := label.SettingsFromStore(result.Store)
	rendered := label.Render(result.Batch, result.Product, result.Store, settings)
	job := h.PrintService.Dispatch(c.Request.Context(), storeID, rendered)

	response.Success(c, PrintResponse{
		Batch: gin.H{
			"id":         result.Batch.ID,
			"product_id": result.Batch.ProductID,
			"quantity":   result.Batch.Quantity,
			"printed_at": result.Batch.PrintedAt,
			"expires_at": result.Batch.ExpiresAt,
		},
		RemindersCreated: result.RemindersCreated,
		Label:            rendered,
		PrinterSettings:  settings,
		PrintJob:         job,
	})
}

func (h *Handler) respondQuantityInvalid(c *gin.Context) {
	msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.batch_quantity_invalid", h.LedgerService.MaxBatchQuantity())
	respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
}
