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
	msgInvalidCredentials = "Username or password is incorrect"
	msgTooManyAttempts    = "Too many failed login attempts, please try again later"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req api.LoginRequest
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	email := auth.NormalizeEmail(req.Email)

	// 失败次数过多
	if a.loginThrottled(rctx, email) {
		a.m.Login.WithLabelValues(metrics.OutcomeThrottled).Inc()
		return a.er(c, http.StatusTooManyRequests, msgTooManyAttempts)
	}

	res, err := a.auth.Login(rctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenIssuance):
			// 凭据正确但无法签发，对外仍是凭据错误
			a.l.Error("failed to issue token", zap.String("email", email), zap.Error(err))
			a.m.Login.WithLabelValues(metrics.OutcomeTokenIssuance).Inc()
			return a.er(c, http.StatusBadRequest, msgInvalidCredentials)
		case errors.Is(err, auth.ErrInvalidCredentials):
			if err != auth.ErrInvalidCredentials {
				// 带有附加原因，例如哈希格式损坏
				a.l.Warn("password check failed", zap.String("email", email), zap.Error(err))
			}
			a.recordLoginFailure(rctx, email)
			a.m.Login.WithLabelValues(metrics.OutcomeInvalid).Inc()
			return a.er(c, http.StatusBadRequest, msgInvalidCredentials)
		default:
			a.l.Error("failed to login", zap.String("email", email), zap.Error(err))
			a.m.Login.WithLabelValues(metrics.OutcomeError).Inc()
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.clearLoginFailures(rctx, email)
	a.m.Login.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return a.ok(c, http.StatusOK, &api.LoginResponse{
		Email: res.Email,
		Token: res.Token,
	})
}
