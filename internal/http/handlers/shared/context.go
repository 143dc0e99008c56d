package shared

import (
	"errors"

	"github.com/freshguard/internal/http/response"

	"github.com/gin-gonic/gin"
)

var (
	errIdentityMissing = errors.New("identity missing from context")
	errIdentityInvalid = errors.New("identity has unexpected type")
)

// ContextID 读取鉴权中间件写入的主体 ID，零值视为缺失
func ContextID(c *gin.Context, key string) (uint, error) {
	value, exists := c.Get(key)
	if !exists {
		return 0, errIdentityMissing
	}
	var id uint
	switch v := value.(type) {
	case uint:
		id = v
	case uint64:
		id = uint(v)
	case int:
		if v < 0 {
			return 0, errIdentityInvalid
		}
		id = uint(v)
	default:
		return 0, errIdentityInvalid
	}
	if id == 0 {
		return 0, errIdentityMissing
	}
	return id, nil
}

// RequireContextID 读取主体 ID，失败时直接写出响应
// 缺失按未登录处理，类型不符属于服务端装配错误
func RequireContextID(c *gin.Context, key, invalidKey string) (uint, bool) {
	id, err := ContextID(c, key)
	switch {
	case err == nil:
		return id, true
	case errors.Is(err, errIdentityMissing):
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	default:
		RespondError(c, response.CodeInternal, invalidKey, err)
	}
	return 0, false
}
