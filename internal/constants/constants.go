package constants

// 后台用户角色
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleAuditor  = "auditor"
)

// 提醒状态（仅持久化 pending / handled，过期状态按时间推导）
const (
	ReminderStatusPending = "pending"
	ReminderStatusHandled = "handled"
)

// 提醒查询过滤
const (
	ReminderFilterExpiring = "expiring"
	ReminderFilterExpired  = "expired"
	ReminderFilterAll      = "all"
)

// 处理原因
const (
	HandlingReasonDiscarded   = "discarded"
	HandlingReasonSold        = "sold"
	HandlingReasonTransferred = "transferred"
)

// 标签语言模板
const (
	LabelLanguageSingle    = "single"
	LabelLanguageBilingual = "bilingual"
	DefaultPrimaryLanguage = "en"
)

// 标签默认宽度（毫米）
const DefaultLabelWidthMM = 58

// 打印投递方式
const (
	PrinterSinkLog = "log"
	PrinterSinkTCP = "tcp"
)

// 队列名称
const (
	QueueDefault = "default"
	QueuePrint   = "print"
)

// 异步任务类型
const (
	TaskLabelPrint = "label:print"
)

// 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyStoreID   = "store_id"
	ContextKeyBrandID   = "brand_id"
	ContextKeyDeviceID  = "device_id"
)
