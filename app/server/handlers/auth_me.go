package handlers

import (
	"library-catalog/app/server/api"
	"library-catalog/app/server/middlewares"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) AuthMe(c echo.Context) error {
	user := middlewares.User(c)
	if user == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	return a.ok(c, http.StatusOK, &api.UserInfo{
		Id:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: time.Unix(user.Expires, 0).UTC(),
	})
}
