package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/middleware"
)

// RegisterUser wires the authenticated user surface: reporting and
// managing items, filing and resolving claims, and the profile
// endpoints.  Every route requires a valid access token; both roles
// are accepted since admins are regular users too.
func RegisterUser(e *echo.Echo, items *handler.ItemHandler, claims *handler.ClaimHandler, profile *handler.ProfileHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("user", "admin"),
	)

	// Item lifecycle.  Public GETs for the same paths live on the
	// public router.
	g.POST("/items", items.Create)
	g.PUT("/items/:id", items.Update)
	g.PATCH("/items/:id", items.Update)
	g.POST("/items/:id/status", items.Transition)
	g.DELETE("/items/:id", items.Delete)
	g.POST("/items/:id/image", items.UploadImage)
	g.GET("/my-items", items.ListMine)

	// Claims: file against someone else's item, moderate claims on
	// your own.
	g.POST("/items/:id/claims", claims.Submit)
	g.POST("/claims/:id/resolve", claims.Resolve)
	g.GET("/claims", claims.ListForOwner)
	g.GET("/my-claims", claims.ListMine)

	// Own profile.
	g.GET("/profile", profile.Get)
	g.PUT("/profile", profile.Update)
	g.POST("/profile/avatar", profile.UploadAvatar)
}
