package router

import (
	"sort"
	"strings"

	"github.com/freshguard/internal/authz"
	"github.com/freshguard/internal/cache"
	"github.com/freshguard/internal/config"
	adminhandlers "github.com/freshguard/internal/http/handlers/admin"
	storehandlers "github.com/freshguard/internal/http/handlers/store"
	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/provider"
	"github.com/freshguard/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按后台/门店终端分组）
	adminHandler := adminhandlers.New(c)
	storeHandler := storehandlers.New(c)
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Name:          "admin_login",
		Prefix:        cache.Key(cache.NamespaceRate, "admin_login"),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	storeBindRule := RateLimitRule{
		Name:          "store_bind",
		Prefix:        cache.Key(cache.NamespaceRate, "store_bind"),
		WindowSeconds: cfg.Security.BindRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.BindRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email", nil)), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(AdminJWTMiddleware(cfg.JWT.SecretKey, c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.GET("/users", adminHandler.GetAdminUsers)

				// 品牌、门店与商品
				authorized.GET("/brands", adminHandler.GetAdminBrands)
				authorized.POST("/brands", adminHandler.CreateAdminBrand)
				authorized.GET("/stores", adminHandler.GetAdminStores)
				authorized.POST("/stores", adminHandler.CreateAdminStore)
				authorized.PATCH("/stores/:id/printer-settings", adminHandler.UpdateAdminStorePrinterSettings)
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.POST("/products", adminHandler.CreateAdminProduct)

				// 绑定码
				authorized.GET("/binding-codes", adminHandler.GetAdminBindingCodes)
				authorized.POST("/binding-codes", adminHandler.IssueAdminBindingCode)

				// 报表与处理日志
				authorized.GET("/reports/expired-handling", adminHandler.GetExpiredHandlingReport)
				authorized.GET("/handling-logs", adminHandler.GetHandlingLogs)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.GetAuthzRoles)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantAuthzRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeAuthzRolePolicy)
				authorized.GET("/authz/permissions", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}

		// 门店终端接口
		store := apiV1.Group("/store")
		{
			// 绑定接口（无需鉴权）
			store.POST("/bind", RateLimitMiddleware(redisClient, storeBindRule, KeyByIPAndJSONField("code", service.NormalizeBindingCode)), storeHandler.BindStore)

			terminal := store.Use(StoreJWTMiddleware(cfg.StoreJWT.SecretKey, c.AuthService, c.CatalogService))
			{
				terminal.GET("/me", storeHandler.GetStoreMe)
				terminal.GET("/products", storeHandler.GetStoreProducts)
				terminal.POST("/print", storeHandler.PrintBatch)
				terminal.GET("/reminders", storeHandler.GetStoreReminders)
				terminal.POST("/reminders/:id/handle", storeHandler.HandleStoreReminder)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
