package router

import (
	"github.com/deppfellow/pharmacy-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the unauthenticated endpoints that are not
// business logic: health status, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
