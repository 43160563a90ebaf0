package constants

import "time"

const (
	AuthTokenDuration = 7 * 24 * time.Hour // 令牌有效期，签发后不可撤销也不会刷新
)

// 固定的角色枚举
const (
	RoleAdmin  = "Admin"
	RoleAuthor = "Author"
)

var Roles = []string{RoleAdmin, RoleAuthor}

const (
	LoginFailuresMax = 5 // 窗口期内允许的失败次数
)
