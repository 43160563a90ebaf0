package middlewares

import (
	"encoding/json"
	"library-catalog/app/server/api"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/jwt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*echo.Echo, *jwt.JWT) {
	t.Helper()
	j, err := jwt.New("middlewares-test-key")
	require.NoError(t, err)

	e := echo.New()
	whoami := func(c echo.Context) error {
		return c.String(http.StatusOK, User(c).Name)
	}
	e.GET("/me", whoami, JWTAuth(j, zap.NewNop()))
	e.GET("/admin", whoami, JWTAuth(j, zap.NewNop()), RequireRole(constants.RoleAdmin))
	return e, j
}

func request(e *echo.Echo, target, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sign(t *testing.T, j *jwt.JWT, role string) string {
	t.Helper()
	token, err := j.SignToken(&jwt.User{ID: "7c0f3c1e-1111-4a3b-8e4e-2b9a2f0d9c11", Name: "Alice", Email: "alice@example.com", Role: role})
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	e, j := newTestServer(t)

	rec := request(e, "/me", "Bearer "+sign(t, j, constants.RoleAuthor))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", rec.Body.String())

	other, err := jwt.New("some-other-key")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":     "",
		"wrong kind":  "Basic YWxpY2U6c2VjcmV0",
		"garbage":     "Bearer abc.def.ghi",
		"foreign key": "Bearer " + sign(t, other, constants.RoleAdmin),
	} {
		rec = request(e, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)

		var body api.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), name)
		assert.False(t, body.IsSuccess, name)
		assert.Equal(t, http.StatusUnauthorized, body.StatusCode, name)
		assert.NotEmpty(t, body.ErrorMessages, name)
	}
}

func TestRequireRole(t *testing.T) {
	e, j := newTestServer(t)

	rec := request(e, "/admin", "Bearer "+sign(t, j, constants.RoleAuthor))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = request(e, "/admin", "Bearer "+sign(t, j, constants.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	// 没有经过 JWTAuth
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := RequireRole(constants.RoleAdmin)(func(c echo.Context) error { return nil })(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, c.Response().Status)
	assert.Nil(t, User(c))
}
