// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/todos/internal/handler"
	"github.com/deppfellow/todos/internal/middleware"
	"github.com/deppfellow/todos/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the error funnel and every route.
//
// Middleware order matters:
//   - RequestID first so everything after it can log the id
//   - New Relic before EnhanceTracing and ContextEnhancer, which read the transaction
//   - CORS before the rate limiter so preflights and 429s carry CORS headers
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerTodoRoutes(api, h)

	return router
}
