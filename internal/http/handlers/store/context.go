package store

import (
	"github.com/freshguard/internal/constants"
	handlershared "github.com/freshguard/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getStoreID(c *gin.Context) (uint, bool) {
	return handlershared.RequireContextID(c, constants.ContextKeyStoreID, "error.store_id_invalid")
}

func getDeviceID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyDeviceID)
}
