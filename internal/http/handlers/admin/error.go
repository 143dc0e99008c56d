package admin

import (
	"github.com/freshguard/internal/authz"
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

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError) {
	handlershared.RespondWithMappedError(c, err, handlershared.ConcatMappedErrors(rules, handlershared.CategoryErrorRules), response.CodeInternal, "error.internal")
}

var catalogErrorRules = []handlershared.MappedError{
	{Target: service.ErrBrandNameRequired, Code: response.CodeBadRequest, Key: "error.brand_name_required"},
	{Target: service.ErrBrandExists, Code: response.CodeConflict, Key: "error.brand_exists"},
	{Target: service.ErrBrandNotFound, Code: response.CodeNotFound, Key: "error.brand_not_found"},
	{Target: service.ErrStoreNameRequired, Code: response.CodeBadRequest, Key: "error.store_name_required"},
	{Target: service.ErrStoreExists, Code: response.CodeConflict, Key: "error.store_exists"},
	{Target: service.ErrStoreNotFound, Code: response.CodeNotFound, Key: "error.store_not_found"},
	{Target: service.ErrProductNameRequired, Code: response.CodeBadRequest, Key: "error.product_name_required"},
	{Target: service.ErrShelfLifeInvalid, Code: response.CodeBadRequest, Key: "error.shelf_life_invalid"},
	{Target: service.ErrLabelLanguageInvalid, Code: response.CodeBadRequest, Key: "error.label_language_invalid"},
	{Target: service.ErrSecondaryLanguageNeeded, Code: response.CodeBadRequest, Key: "error.secondary_language_required"},
	{Target: service.ErrLanguagesIdentical, Code: response.CodeBadRequest, Key: "error.languages_identical"},
	{Target: service.ErrProductExists, Code: response.CodeConflict, Key: "error.product_exists"},
	{Target: service.ErrPrinterSettingInvalid, Code: response.CodeBadRequest, Key: "error.printer_setting_invalid"},
}

var bindingCodeErrorRules = []handlershared.MappedError{
	{Target: service.ErrBindingCodeFormat, Code: response.CodeBadRequest, Key: "error.binding_code_format"},
	{Target: service.ErrBindingCodeExpiresIn, Code: response.CodeBadRequest, Key: "error.binding_code_expires_invalid"},
	{Target: service.ErrBindingCodeExists, Code: response.CodeConflict, Key: "error.binding_code_exists"},
	{Target: service.ErrStoreNotFound, Code: response.CodeNotFound, Key: "error.store_not_found"},
}

var authzErrorRules = []handlershared.MappedError{
	{Target: authz.ErrImmutableRole, Code: response.CodeBadRequest, Key: "error.role_immutable"},
	{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: authz.ErrReservedRole, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: authz.ErrObjectOutOfScope, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: authz.ErrActionInvalid, Code: response.CodeBadRequest, Key: "error.bad_request"},
}
