package handlers

import (
	"errors"
	"fmt"
	"library-catalog/app/server/api"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) ok(c echo.Context, statusCode int, result any) error {
	return c.JSON(statusCode, api.Success(statusCode, result))
}

func (a *App) er(c echo.Context, statusCode int, messages ...string) error {
	return c.JSON(statusCode, api.Failure(statusCode, messages...))
}

// HTTPErrorHandler answers framework errors (unknown route, wrong method,
// recovered panics) with the same envelope the handlers use.
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	var messages []string

	var he *echo.HTTPError
	if errors.As(err, &he) {
		statusCode = he.Code
		if he.Internal != nil {
			a.l.Debug("http error", zap.Int("status", statusCode), zap.Error(he.Internal))
		}
		if msg, ok := he.Message.(string); ok && msg != "" {
			messages = append(messages, msg)
		} else if he.Message != nil {
			messages = append(messages, fmt.Sprint(he.Message))
		}
	} else {
		a.l.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(statusCode)
	} else {
		err = a.er(c, statusCode, messages...)
	}
	if err != nil {
		a.l.Error("failed to write error response", zap.Error(err))
	}
}
