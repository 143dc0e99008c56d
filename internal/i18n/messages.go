package i18n

var catalog = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":                  "invalid request parameters",
		"error.unauthorized":                 "unauthorized",
		"error.forbidden":                    "forbidden",
		"error.not_found":                    "resource not found",
		"error.conflict":                     "resource conflict",
		"error.expired":                      "resource expired",
		"error.too_many_requests":            "too many requests, please try again later",
		"error.internal":                     "internal server error",
		"error.user_id_invalid":              "invalid user id",
		"error.store_id_invalid":             "invalid store id",
		"error.token_invalid":                "invalid or expired token",
		"error.admin_login_invalid":          "invalid email or password",
		"error.user_not_found":               "user not found",
		"error.binding_code_required":        "binding code is required",
		"error.binding_code_invalid":         "invalid binding code",
		"error.binding_code_format":          "binding code must be 4-64 characters of A-Z, 0-9 or -",
		"error.binding_code_expires_invalid": "expires_in_hours must be greater than 0 and at most 87600",
		"error.binding_code_used":            "binding code already used",
		"error.binding_code_exists":          "binding code already exists",
		"error.binding_code_expired":         "binding code expired",
		"error.batch_quantity_invalid":       "quantity must be an integer between 1 and %d",
		"error.product_brand_mismatch":       "product does not belong to this store's brand",
		"error.reminder_status_invalid":      "status must be expiring, expired or all",
		"error.threshold_days_invalid":       "threshold_days must be a non-negative integer",
		"error.handling_reason_invalid":      "reason must be discarded, sold or transferred",
		"error.reminder_not_found":           "reminder not found",
		"error.reminder_already_handled":     "reminder already handled",
		"error.store_not_found":              "store not found",
		"error.brand_not_found":              "brand not found",
		"error.product_not_found":            "product not found",
		"error.brand_name_required":          "brand name is required",
		"error.brand_exists":                 "brand already exists",
		"error.store_name_required":          "store name is required",
		"error.store_exists":                 "store already exists in this brand",
		"error.product_name_required":        "product name is required",
		"error.shelf_life_invalid":           "shelf_life_days must be greater than 0",
		"error.label_language_invalid":       "label_language must be single or bilingual",
		"error.secondary_language_required":  "secondary_language is required for bilingual labels",
		"error.languages_identical":          "secondary_language must differ from primary_language",
		"error.product_exists":               "product name or sku already exists in this brand",
		"error.printer_setting_invalid":      "invalid printer setting",
		"error.report_failed":                "failed to build report",
		"error.role_immutable":               "builtin roles cannot be modified",
		"error.auth_header_missing":          "missing authorization header",
		"error.auth_header_invalid":          "invalid authorization header",
		"error.jwt_secret_missing":           "token secret is not configured",
		"error.rate_limited":                 "too many attempts, please retry in %d seconds",
		"error.rate_limit_unavailable":       "rate limiter unavailable",
	},
	LocaleZhCN: {
		"error.bad_request":                  "请求参数错误",
		"error.unauthorized":                 "未授权",
		"error.forbidden":                    "无权访问",
		"error.not_found":                    "资源不存在",
		"error.conflict":                     "资源冲突",
		"error.expired":                      "资源已过期",
		"error.too_many_requests":            "请求过于频繁，请稍后再试",
		"error.internal":                     "服务器内部错误",
		"error.user_id_invalid":              "用户ID无效",
		"error.store_id_invalid":             "门店ID无效",
		"error.token_invalid":                "令牌无效或已过期",
		"error.admin_login_invalid":          "邮箱或密码错误",
		"error.user_not_found":               "用户不存在",
		"error.binding_code_required":        "绑定码不能为空",
		"error.binding_code_invalid":         "绑定码无效",
		"error.binding_code_format":          "绑定码须为 4-64 位大写字母、数字或 -",
		"error.binding_code_expires_invalid": "有效期小时数必须大于 0 且不超过 87600",
		"error.binding_code_used":            "绑定码已被使用",
		"error.binding_code_exists":          "绑定码已存在",
		"error.binding_code_expired":         "绑定码已过期",
		"error.batch_quantity_invalid":       "打印数量须为 1 到 %d 之间的整数",
		"error.product_brand_mismatch":       "商品不属于该门店品牌",
		"error.reminder_status_invalid":      "状态须为 expiring、expired 或 all",
		"error.threshold_days_invalid":       "提前天数须为非负整数",
		"error.handling_reason_invalid":      "处理原因须为 discarded、sold 或 transferred",
		"error.reminder_not_found":           "提醒不存在",
		"error.reminder_already_handled":     "提醒已处理",
		"error.store_not_found":              "门店不存在",
		"error.brand_not_found":              "品牌不存在",
		"error.product_not_found":            "商品不存在",
		"error.brand_name_required":          "品牌名称不能为空",
		"error.brand_exists":                 "品牌已存在",
		"error.store_name_required":          "门店名称不能为空",
		"error.store_exists":                 "该品牌下门店已存在",
		"error.product_name_required":        "商品名称不能为空",
		"error.shelf_life_invalid":           "保质期天数必须大于 0",
		"error.label_language_invalid":       "标签语言须为 single 或 bilingual",
		"error.secondary_language_required":  "双语标签必须设置第二语言",
		"error.languages_identical":          "第二语言不能与主语言相同",
		"error.product_exists":               "该品牌下商品名称或 SKU 已存在",
		"error.printer_setting_invalid":      "打印机设置无效",
		"error.report_failed":                "报表生成失败",
		"error.role_immutable":               "预置角色不可修改",
		"error.auth_header_missing":          "缺少认证头",
		"error.auth_header_invalid":          "认证头格式错误",
		"error.jwt_secret_missing":           "令牌密钥未配置",
		"error.rate_limited":                 "尝试次数过多，请 %d 秒后重试",
		"error.rate_limit_unavailable":       "限流服务不可用",
	},
}
