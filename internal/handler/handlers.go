// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// It acts as the interface between the HTTP request and the core
// business logic.
package handler

import (
	"github.com/deppfellow/todos/internal/server"
	"github.com/deppfellow/todos/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one object.
type Handlers struct {
	Todo    *TodoHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Todo:    NewTodoHandler(s, services.Todo),
		Health:  NewHealthHandler(s, services.Health),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
