package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) HealthCheck(c echo.Context) error {
	rctx := c.Request().Context()

	// 数据库
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(rctx)
	}
	if err != nil {
		a.l.Error("health check: database unavailable", zap.Error(err))
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
