package models

import "time"

// User 后台用户
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                       // 主键
	Email        string     `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`        // 登录邮箱（小写）
	PasswordHash string     `gorm:"not null" json:"-"`                                          // 密码哈希
	Role         string     `gorm:"type:varchar(24);index;not null;default:'admin'" json:"role"` // 角色 admin/operator/auditor
	LastLoginAt  *time.Time `json:"last_login_at"`                                              // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                                 // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
