package handlers

import (
	"errors"
	"library-catalog/app/server/api"
	"library-catalog/app/server/auth"
	"library-catalog/app/server/metrics"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgDuplicateAccount   = "Username already exists"
	msgRegistrationFailed = "Error while registering"
)

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req api.RegisterRequest
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	reg, err := a.auth.Register(rctx, auth.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateAccount) {
			a.m.Register.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return a.er(c, http.StatusBadRequest, msgDuplicateAccount)
		}
		a.l.Error("failed to register", zap.String("email", auth.NormalizeEmail(req.Email)), zap.Error(err))
		a.m.Register.WithLabelValues(metrics.OutcomeFailed).Inc()
		return a.er(c, http.StatusBadRequest, msgRegistrationFailed)
	}

	a.l.Info("account registered",
		zap.String("id", reg.Account.ID.String()),
		zap.String("role", reg.Role),
	)
	a.m.Register.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return a.ok(c, http.StatusOK, nil)
}
