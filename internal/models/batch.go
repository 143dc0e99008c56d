package models

import "time"

// Batch 打印批次
type Batch struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                    // 主键
	StoreID   uint      `gorm:"not null;index" json:"store_id"`                                          // 门店ID
	ProductID uint      `gorm:"not null;index" json:"product_id"`                                        // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                                // 打印数量
	PrintedAt time.Time `gorm:"not null;index" json:"printed_at"`                                        // 打印时间
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`                                        // 到期时间
	CreatedAt time.Time `json:"created_at"`                                                              // 创建时间
	Store     *Store    `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"store,omitempty"`   // 门店
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (Batch) TableName() string {
	return "batches"
}
