package store

import (
	handlershared "github.com/freshguard/internal/http/handlers/shared"
	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError) {
	handlershared.RespondWithMappedError(c, err, handlershared.ConcatMappedErrors(rules, handlershared.CategoryErrorRules), response.CodeInternal, "error.internal")
}

var bindErrorRules = []handlershared.MappedError{
	{Target: service.ErrBindingCodeRequired, Code: response.CodeBadRequest, Key: "error.binding_code_required"},
	{Target: service.ErrBindingCodeInvalid, Code: response.CodeBadRequest, Key: "error.binding_code_invalid"},
	{Target: service.ErrBindingCodeUsed, Code: response.CodeConflict, Key: "error.binding_code_used"},
	{Target: service.ErrBindingCodeExpired, Code: response.CodeExpired, Key: "error.binding_code_expired"},
	{Target: service.ErrStoreNotFound, Code: response.CodeNotFound, Key: "error.store_not_found"},
}

var storeErrorRules = []handlershared.MappedError{
	{Target: service.ErrStoreNotFound, Code: response.CodeNotFound, Key: "error.store_not_found"},
}

var ledgerErrorRules = []handlershared.MappedError{
	{Target: service.ErrStoreNotFound, Code: response.CodeNotFound, Key: "error.store_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductBrandMismatch, Code: response.CodeBadRequest, Key: "error.product_brand_mismatch"},
	{Target: service.ErrReminderStatusInvalid, Code: response.CodeBadRequest, Key: "error.reminder_status_invalid"},
	{Target: service.ErrThresholdDaysInvalid, Code: response.CodeBadRequest, Key: "error.threshold_days_invalid"},
	{Target: service.ErrHandlingReasonInvalid, Code: response.CodeBadRequest, Key: "error.handling_reason_invalid"},
	{Target: service.ErrReminderNotFound, Code: response.CodeNotFound, Key: "error.reminder_not_found"},
	{Target: service.ErrReminderAlreadyHandled, Code: response.CodeConflict, Key: "error.reminder_already_handled"},
}
