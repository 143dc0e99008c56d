package store

import "github.com/freshguard/internal/provider"

// Handler 门店终端接口处理器入口
// 说明：该处理器仅用于已绑定终端与绑定流程 API。
type Handler struct {
	*provider.Container
}

// New 创建门店终端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
