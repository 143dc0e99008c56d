package models

import "time"

// Reminder 单件到期提醒
// 状态仅有 pending / handled，是否过期由 ExpiresAt 与当前时间推导
type Reminder struct {
	ID        uint       `gorm:"primarykey" json:"id"`                                                        // 主键
	BatchID   uint       `gorm:"not null;index" json:"batch_id"`                                              // 批次ID
	StoreID   uint       `gorm:"not null;index:idx_reminders_store_status_expires,priority:1" json:"store_id"` // 门店ID
	ProductID uint       `gorm:"not null;index" json:"product_id"`                                            // 商品ID
	ExpiresAt time.Time  `gorm:"not null;index:idx_reminders_store_status_expires,priority:3" json:"expires_at"` // 到期时间
	Status    string     `gorm:"type:varchar(16);not null;default:'pending';index:idx_reminders_store_status_expires,priority:2" json:"status"` // 状态
	HandledAt *time.Time `json:"handled_at"`                                                                  // 处理时间
	CreatedAt time.Time  `json:"created_at"`                                                                  // 创建时间
	Batch     *Batch     `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE" json:"batch,omitempty"`       // 批次
	Store     *Store     `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"store,omitempty"`       // 门店
	Product   *Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`   // 商品
}

// TableName 指定表名
func (Reminder) TableName() string {
	return "reminders"
}
