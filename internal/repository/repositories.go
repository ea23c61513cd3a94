package repository

import (
	"github.com/deppfellow/todos/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Todos TodoStore

	// Store answers health checks for whatever backs Todos.
	Store Pinger
}

// NewRepositories constructs the repository container on top of the
// server's shared database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Todos: NewTodoRepository(s.DB.Pool),
		Store: s.DB,
	}
}

// NewMemoryRepositories constructs a container backed by one in-memory
// store. The returned MemoryTodoRepository is the same instance as Todos.
func NewMemoryRepositories() (*Repositories, *MemoryTodoRepository) {
	memory := NewMemoryTodoRepository()
	return &Repositories{
		Todos: memory,
		Store: memory,
	}, memory
}
