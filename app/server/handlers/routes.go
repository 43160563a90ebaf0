package handlers

import (
	"library-catalog/app/server/constants"
	"library-catalog/app/server/middlewares"

	"github.com/labstack/echo/v4"
)

// RegisterHandlers 绑定所有 API 路由
func (a *App) RegisterHandlers(e *echo.Echo) {
	authed := middlewares.JWTAuth(a.jwt, a.l)
	adminOnly := middlewares.RequireRole(constants.RoleAdmin)

	e.GET("/healthz", a.HealthCheck)
	if a.m != nil {
		e.GET("/metrics", echo.WrapHandler(a.m.Handler()))
	}

	api := e.Group("/api")

	// 认证
	api.POST("/auth/login", a.AuthLogin)
	api.POST("/auth/register", a.AuthRegister)
	api.GET("/auth/me", a.AuthMe, authed)

	// 作者
	api.GET("/author", a.AuthorList)
	api.GET("/author/:id", a.AuthorInfoGet)
	api.POST("/author", a.AuthorCreate, authed)
	api.PUT("/author/:id", a.AuthorInfoUpdate, authed)
	api.DELETE("/author/:id", a.AuthorDelete, authed, adminOnly)

	// 分类
	api.GET("/category", a.CategoryList)
	api.GET("/category/:id", a.CategoryInfoGet)
	api.POST("/category", a.CategoryCreate, authed)
	api.PUT("/category/:id", a.CategoryInfoUpdate, authed)
	api.DELETE("/category/:id", a.CategoryDelete, authed, adminOnly)

	// 书
	api.GET("/book", a.BookList)
	api.GET("/book/:id", a.BookInfoGet)
	api.GET("/book/:id/categories", a.BookCategories)
	api.POST("/book", a.BookCreate, authed)
	api.PUT("/book/:id", a.BookInfoUpdate, authed)
	api.DELETE("/book/:id", a.BookDelete, authed, adminOnly)
}
