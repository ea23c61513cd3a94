package service

import (
	"github.com/deppfellow/todos/internal/repository"
	"github.com/deppfellow/todos/internal/server"
)

type Services struct {
	Todo   *TodoService
	Health *HealthService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Todo:   NewTodoService(repos.Todos),
		Health: NewHealthService(s, repos.Store),
	}, nil
}
