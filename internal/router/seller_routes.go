package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sellerapp/storefront-api/internal/handler"
	"github.com/sellerapp/storefront-api/internal/middleware"
)

// RegisterSeller registers the seller console under /v1/seller.  Every
// route requires a valid JWT with the SELLER role; the gate answers with
// the login or dashboard redirect instead of a bare error so clients can
// route the user.
func RegisterSeller(e *echo.Echo, h *handler.SellerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/seller",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleSeller),
	)

	// Store onboarding and dashboard.
	g.POST("/store", h.CreateStore)
	g.GET("/store", h.GetDashboard)
	g.GET("/store/url", h.GetStoreURL)

	// Product catalog, capped at 12 products of 3 images each.
	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)
}
