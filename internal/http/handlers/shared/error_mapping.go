package shared

import (
	"errors"

	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// CategoryErrorRules 错误类别兜底映射，放在具体规则之后使用。
var CategoryErrorRules = []MappedError{
	{Target: service.ErrInvalidArgument, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrConflict, Code: response.CodeConflict, Key: "error.conflict"},
	{Target: service.ErrExpired, Code: response.CodeExpired, Key: "error.expired"},
}

// RespondWithMappedError 按规则顺序匹配错误，均未命中时使用兜底并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
