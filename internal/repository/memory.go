package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/sqlerr"
)

// MemoryTodoRepository implements TodoStore in memory. It signals missing
// rows exactly like the Postgres repository, so it can stand in for it.
type MemoryTodoRepository struct {
	mu     sync.RWMutex
	todos  map[int64]model.Todo
	nextID int64
	now    func() time.Time
	err    error

	insertErr error
}

var _ TodoStore = (*MemoryTodoRepository)(nil)

// NewMemoryTodoRepository creates an empty in-memory repository.
func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		todos:  make(map[int64]model.Todo),
		nextID: 1,
		now:    time.Now,
	}
}

// FailWith makes every following operation fail with err as a store
// failure. A nil err restores normal behavior.
func (r *MemoryTodoRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// FailInsertWith makes only Insert fail with err, leaving every other
// operation working. A nil err restores normal behavior.
func (r *MemoryTodoRepository) FailInsertWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertErr = err
}

func (r *MemoryTodoRepository) failure() error {
	if r.err == nil {
		return nil
	}
	return sqlerr.Wrap(r.err, todosTable)
}

func (r *MemoryTodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.failure(); err != nil {
		return nil, err
	}

	todos := make([]model.Todo, 0, len(r.todos))
	for _, todo := range r.todos {
		todos = append(todos, todo)
	}

	sort.Slice(todos, func(i, j int) bool {
		if !todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].CreatedAt.After(todos[j].CreatedAt)
		}
		return todos[i].ID > todos[j].ID
	})

	return todos, nil
}

func (r *MemoryTodoRepository) Insert(ctx context.Context, todos []model.NewTodo) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failure(); err != nil {
		return nil, err
	}
	if r.insertErr != nil {
		return nil, sqlerr.Wrap(r.insertErr, todosTable)
	}

	// One statement in Postgres: every row shares the same timestamp.
	createdAt := r.now()

	inserted := make([]model.Todo, 0, len(todos))
	for _, todo := range todos {
		stored := model.Todo{
			ID:        r.nextID,
			Text:      todo.Text,
			Completed: todo.Completed,
			CreatedAt: createdAt,
		}
		r.nextID++
		r.todos[stored.ID] = stored
		inserted = append(inserted, stored)
	}

	return inserted, nil
}

func (r *MemoryTodoRepository) Update(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failure(); err != nil {
		return nil, err
	}

	todo, exists := r.todos[id]
	if !exists {
		return nil, sqlerr.NewNotFound(todosTable)
	}

	if patch.IsEmpty() {
		return &todo, nil
	}

	todo = patch.Apply(todo)
	r.todos[id] = todo

	return &todo, nil
}

func (r *MemoryTodoRepository) Delete(ctx context.Context, id int64) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failure(); err != nil {
		return nil, err
	}

	todo, exists := r.todos[id]
	if !exists {
		return nil, sqlerr.NewNotFound(todosTable)
	}

	delete(r.todos, id)

	return &todo, nil
}

func (r *MemoryTodoRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.failure(); err != nil {
		return 0, err
	}

	removed := int64(len(r.todos))
	r.todos = make(map[int64]model.Todo)

	return removed, nil
}

// Ping fails only while a failure is injected with FailWith.
func (r *MemoryTodoRepository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.failure()
}
