// Package router maps the HTTP surface onto handlers and middleware.
// Routes are grouped by audience: public browse endpoints (cached),
// authenticated user endpoints and the admin moderation surface.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/lost-and-found/internal/config"
	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// other dependencies.  Currently just the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session endpoints.  Register, login, refresh
// and logout live under /v1/auth and need no token; /v1/me sits behind
// JWT auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic wires the unauthenticated browse endpoints behind the
// Redis response cache.  Guests can list, search and inspect items
// without an account; the cache absorbs the read traffic these
// endpoints attract.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/items", p.ListItems, cached)
	e.GET("/v1/items/:id", p.GetItem, cached)
	e.GET("/v1/categories", p.Categories, cached)
}
