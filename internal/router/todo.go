package router

import (
	"github.com/deppfellow/todos/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerTodoRoutes sends every method on /todos to the dispatcher, which
// owns the method handling (including the 405 for unsupported methods).
func registerTodoRoutes(api *echo.Group, h *handler.Handlers) {
	api.Any("/todos", h.Todo.Dispatch)
}
