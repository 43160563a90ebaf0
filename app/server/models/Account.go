package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 基础信息
	Email           string `gorm:"column:email" json:"email"`                                  // 注册时提交的邮箱
	NormalizedEmail string `gorm:"column:normalized_email;uniqueIndex" json:"normalizedEmail"` // 小写化后的邮箱，全局唯一
	Name            string `gorm:"column:name" json:"name"`                                    // 显示名称

	// 登录相关
	PasswordHash string `gorm:"column:password_hash" json:"-"` // 密码，使用 argon2id 储存

	// 存储上允许多个角色，注册流程只会分配一个
	Roles []Role `gorm:"many2many:account_roles;" json:"-"`
}
