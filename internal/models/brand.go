package models

import "time"

// Brand 品牌
type Brand struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	Name      string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"` // 品牌名称
	CreatedAt time.Time `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (Brand) TableName() string {
	return "brands"
}
