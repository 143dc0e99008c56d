package models

import "time"

// Store 门店（含打印机设置）
type Store struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                                                  // 主键
	BrandID        uint      `gorm:"not null;index;uniqueIndex:idx_stores_brand_name,priority:1" json:"brand_id"`           // 品牌ID
	Name           string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_stores_brand_name,priority:2" json:"name"`   // 门店名称（品牌内唯一）
	PrinterName    *string   `gorm:"type:varchar(120)" json:"printer_name"`                                                 // 打印机名称
	PrinterModel   *string   `gorm:"type:varchar(120)" json:"printer_model"`                                                // 打印机型号
	PrinterAddress *string   `gorm:"type:varchar(255)" json:"printer_address"`                                              // 打印机地址
	PrinterPort    *int      `json:"printer_port"`                                                                          // 打印机端口
	PrinterDPI     *int      `gorm:"column:printer_dpi" json:"printer_dpi"`                                                 // 打印分辨率
	LabelWidthMM   *int      `gorm:"column:label_width_mm;default:58" json:"label_width_mm"`                                // 标签宽度（毫米）
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                                               // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                                                                            // 更新时间
	Brand          *Brand    `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE" json:"brand,omitempty"`                 // 品牌
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
