// Package repository handles all interactions with the todo store.
//
// It contains the SQL and the methods to fetch, persist, update or
// delete todos, abstracting store details away from the service layer.
// Every failure leaves this package as a *sqlerr.Error.
package repository

import (
	"context"

	"github.com/deppfellow/todos/internal/model"
)

// TodoStore is the capability set the service layer needs from the store.
//
// Update and Delete report a missing row with a sqlerr.NotFound error.
type TodoStore interface {
	// List returns every todo, newest first.
	List(ctx context.Context) ([]model.Todo, error)

	// Insert stores one or many todos and returns them as stored.
	Insert(ctx context.Context, todos []model.NewTodo) ([]model.Todo, error)

	// Update applies patch to the todo with id and returns the result.
	Update(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error)

	// Delete removes the todo with id and returns it as it was.
	Delete(ctx context.Context, id int64) (*model.Todo, error)

	// DeleteAll removes every todo and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
