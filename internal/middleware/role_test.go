package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/utils"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("user", "admin")

	assert.Equal(t, http.StatusOK, runWithRole(t, mw, "user").Code)
	assert.Equal(t, http.StatusOK, runWithRole(t, mw, "admin").Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, mw, "guest").Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, mw, nil).Code, "missing claim is refused")
	assert.Equal(t, http.StatusForbidden, runWithRole(t, mw, 42).Code, "non-string claim is refused")

	adminOnly := RequireRole("admin")
	assert.Equal(t, http.StatusForbidden, runWithRole(t, adminOnly, "user").Code)
	assert.Equal(t, http.StatusOK, runWithRole(t, adminOnly, "admin").Code)
}

func TestJWTAuth(t *testing.T) {
	const secret = "mw-test-secret"
	e := echo.New()
	mw := JWTAuth(secret)
	next := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
	}

	t.Run("valid token passes and populates context", func(t *testing.T) {
		at, err := utils.NewAccessToken(secret, 7, "user", 5)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"user"`)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		at, err := utils.NewAccessToken("some-other-secret", 7, "user", 5)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+at.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
