package store

import (
	"strconv"
	"strings"

	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

// HandleReminderRequest 处理提醒请求
type HandleReminderRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

// GetStoreReminders 按状态与提前天数列出未处理提醒
func (h *Handler) GetStoreReminders(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}

	var thresholdDays *int
	if raw := strings.TrimSpace(c.Query("threshold_days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.threshold_days_invalid", nil)
			return
		}
		thresholdDays = &parsed
	}

	reminders, err := h.LedgerService.ListReminders(storeID, c.Query("status"), thresholdDays)
	if err != nil {
		respondWithMappedError(c, err, ledgerErrorRules)
		return
	}
	response.Success(c, reminders)
}

// HandleStoreReminder 将提醒标记为已处理
func (h *Handler) HandleStoreReminder(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		return
	}
	reminderID, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || reminderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req HandleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	reminder, err := h.LedgerService.HandleReminder(service.HandleReminderInput{
		StoreID:    storeID,
		ReminderID: uint(reminderID),
		Reason:     req.Reason,
		Note:       req.Note,
	})
	if err != nil {
		respondWithMappedError(c, err, ledgerErrorRules)
		return
	}
	response.Success(c, gin.H{
		"id":         reminder.ID,
		"batch_id":   reminder.BatchID,
		"product_id": reminder.ProductID,
		"status":     reminder.Status,
		"handled_at": reminder.HandledAt,
	})
}
