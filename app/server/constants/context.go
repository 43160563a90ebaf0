package constants

const (
	ContextKeyUser = "user" // JWT 中间件解析出的用户
)
