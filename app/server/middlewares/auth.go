package middlewares

import (
	"library-catalog/app/server/api"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/jwt"
	"net/http"
	"slices"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTAuth 校验 Bearer 令牌，并把解析出的 *jwt.User 存入 context
func JWTAuth(j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: constants.ContextKeyUser,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return j.ParseUser(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// 缺失、格式错误、签名无效、过期统一返回 401
			l.Debug("rejected token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, api.Failure(http.StatusUnauthorized, "Missing, invalid or expired token"))
		},
	})
}

// User 返回 JWTAuth 存入的用户，未认证时为 nil
func User(c echo.Context) *jwt.User {
	user, _ := c.Get(constants.ContextKeyUser).(*jwt.User)
	return user
}

// RequireRole 要求调用者拥有其中一个角色，需放在 JWTAuth 之后
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := User(c)
			if user == nil {
				return c.JSON(http.StatusUnauthorized, api.Failure(http.StatusUnauthorized))
			}
			if !slices.Contains(roles, user.Role) {
				return c.JSON(http.StatusForbidden, api.Failure(http.StatusForbidden))
			}
			return next(c)
		}
	}
}
