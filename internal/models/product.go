package models

import "time"

// Product 商品
type Product struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                                                          // 主键
	BrandID           uint      `gorm:"not null;index;uniqueIndex:idx_products_brand_name,priority:1;uniqueIndex:idx_products_brand_sku,priority:1" json:"brand_id"` // 品牌ID
	Name              string    `gorm:"type:varchar(160);not null;uniqueIndex:idx_products_brand_name,priority:2" json:"name"`         // 商品名称（品牌内唯一）
	SKU               *string   `gorm:"column:sku;type:varchar(80);uniqueIndex:idx_products_brand_sku,priority:2" json:"sku"`          // SKU（品牌内唯一，可空）
	ShelfLifeDays     int       `gorm:"not null" json:"shelf_life_days"`                                                               // 保质期天数
	LabelLanguage     string    `gorm:"type:varchar(16);not null;default:'single'" json:"label_language"`                             // 标签模板 single/bilingual
	PrimaryLanguage   string    `gorm:"type:varchar(16);not null;default:'en'" json:"primary_language"`                               // 主语言
	SecondaryLanguage *string   `gorm:"type:varchar(16)" json:"secondary_language"`                                                    // 第二语言（双语必填）
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                                                       // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                                                                    // 更新时间
	Brand             *Brand    `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"brand,omitempty"`                         // 品牌
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
