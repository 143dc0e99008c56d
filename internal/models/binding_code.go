package models

import "time"

// BindingCode 门店终端一次性绑定码
type BindingCode struct {
	ID            uint       `gorm:"primarykey" json:"id"`                                                  // 主键
	BrandID       uint       `gorm:"not null;index" json:"brand_id"`                                        // 品牌ID
	StoreID       uint       `gorm:"not null;index" json:"store_id"`                                        // 门店ID
	Code          string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`                     // 绑定码（大写）
	ExpiresAt     *time.Time `gorm:"index" json:"expires_at"`                                               // 过期时间
	UsedAt        *time.Time `gorm:"index" json:"used_at"`                                                  // 使用时间
	BoundDeviceID *string    `gorm:"type:varchar(128)" json:"bound_device_id"`                              // 绑定设备
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                                               // 创建时间
	Brand         *Brand     `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"brand,omitempty"` // 品牌
	Store         *Store     `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"store,omitempty"` // 门店
}

// TableName 指定表名
func (BindingCode) TableName() string {
	return "binding_codes"
}

// IsUsed 是否已使用
func (b *BindingCode) IsUsed() bool {
	return b != nil && b.UsedAt != nil
}

// IsExpiredAt 判断在 now 时刻是否已过期
func (b *BindingCode) IsExpiredAt(now time.Time) bool {
	return b != nil && b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}
