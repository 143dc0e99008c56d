package models

import "time"

// HandlingLog 提醒处理审计日志（仅追加）
type HandlingLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	ReminderID uint      `gorm:"not null;uniqueIndex" json:"reminder_id"`                                    // 提醒ID（一对一）
	StoreID    uint      `gorm:"not null;index" json:"store_id"`                                             // 门店ID
	ProductID  uint      `gorm:"not null;index" json:"product_id"`                                           // 商品ID
	Reason     string    `gorm:"type:varchar(24);not null;index" json:"reason"`                              // 处理原因
	Note       *string   `gorm:"type:text" json:"note"`                                                      // 备注
	HandledAt  time.Time `gorm:"not null;index" json:"handled_at"`                                           // 处理时间
	CreatedAt  time.Time `json:"created_at"`                                                                 // 创建时间
	Reminder   *Reminder `gorm:"foreignKey:ReminderID;constraint:OnDelete:CASCADE" json:"reminder,omitempty"` // 提醒
}

// TableName 指定表名
func (HandlingLog) TableName() string {
	return "handling_logs"
}
