package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sellerapp/storefront-api/internal/config"
	"github.com/sellerapp/storefront-api/internal/handler"
	"github.com/sellerapp/storefront-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication:
// the health check, the Prometheus scrape endpoint and the static file
// tree backing product image URLs.
func RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", cfg.UploadDir)
}

// RegisterAuth registers authentication routes.  Unauthenticated
// operations live under /v1/auth behind the rate limiter, since those are
// the endpoints an attacker can hammer without credentials; protected
// session endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/verify", a.Verify)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Logout with a bearer and no body token revokes every session.
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated storefront lookup.  No JWT
// or role middleware applies; this is the page behind the shared link.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/stores/:slug", p.GetStorefront)
}
