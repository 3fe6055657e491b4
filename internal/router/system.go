package router

import (
	"github.com/deppfellow/vocab/internal/handler"
	"github.com/deppfellow/vocab/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the domain: health,
// the docs UI and the embedded assets it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.FS)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
