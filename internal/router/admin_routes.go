package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/handler"
	"github.com/sellerapp/storefront-api/internal/middleware"
)

// RegisterAdmin registers the operator console under /v1/admin.  The role
// gate downgrades sellers to their dashboard rather than erroring.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
	)

	g.GET("/stores", h.ListStores)
	g.POST("/stores/:id/toggle", h.ToggleStore)
}
