package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/middleware"
)

// RegisterAdmin wires the moderation surface under /v1/admin.  The
// role middleware trims non-admin tokens early; each handler then
// re-resolves the role from the database before acting, so a demotion
// takes effect before the access token expires.
func RegisterAdmin(e *echo.Echo, admin *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)

	g.GET("/analytics", admin.Analytics)
	g.GET("/users", admin.ListUsers)
	g.DELETE("/users/:id", admin.DeleteUser)
	g.POST("/users/:id/role", admin.AssignRole)
	g.PATCH("/items/:id/verify", admin.SetVerified)
	g.DELETE("/items/:id", admin.DeleteItem)
}
