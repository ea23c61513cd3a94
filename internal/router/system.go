package router

import (
	"github.com/deppfellow/todos/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the todo API:
// the health status, the docs page and the static docs assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", handler.StaticFiles())

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
