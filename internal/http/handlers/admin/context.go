package admin

import (
	"strconv"
	"strings"

	"github.com/freshguard/internal/constants"
	handlershared "github.com/freshguard/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.RequireContextID(c, constants.ContextKeyUserID, "error.user_id_invalid")
}

func parseUintParam(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseOptionalUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	return parseUintParam(raw)
}
