package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/todos/internal/errs"
	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/repository"
)

// TodoService owns the todo business rules: text is stored trimmed and
// never blank, and a bulk replace is a delete-all followed by an insert.
type TodoService struct {
	todos repository.TodoStore
}

func NewTodoService(todos repository.TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

// List returns every todo, newest first. The result is never nil.
func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.todos.List(ctx)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Create stores a new, not yet completed todo.
func (s *TodoService) Create(ctx context.Context, text string) (*model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, blankTextError()
	}

	inserted, err := s.todos.Insert(ctx, []model.NewTodo{{Text: text}})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("todo_id", inserted[0].ID).Msg("todo created")

	return &inserted[0], nil
}

// Update applies the present fields of patch to the todo with id.
// A patch without fields changes nothing and returns the current todo.
func (s *TodoService) Update(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error) {
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, blankTextError()
		}
		patch.Text = &text
	}

	return s.todos.Update(ctx, id, patch)
}

// Replace deletes every todo, then inserts todos. The two steps are
// separate store calls: a reader in between can see an empty or partial
// collection, and a failed insert leaves the collection empty.
//
// It returns how many todos were inserted.
func (s *TodoService) Replace(ctx context.Context, todos []model.NewTodo) (int, error) {
	logger := zerolog.Ctx(ctx)

	removed, err := s.todos.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	if len(todos) == 0 {
		logger.Info().Int64("removed", removed).Int("inserted", 0).Msg("todos replaced")
		return 0, nil
	}

	for i := range todos {
		todos[i].Text = strings.TrimSpace(todos[i].Text)
	}

	inserted, err := s.todos.Insert(ctx, todos)
	if err != nil {
		logger.Error().Err(err).Int64("removed", removed).Msg("bulk insert failed after delete")
		return 0, err
	}

	logger.Info().Int64("removed", removed).Int("inserted", len(inserted)).Msg("todos replaced")

	return len(inserted), nil
}

// Delete removes the todo with id and returns it.
func (s *TodoService) Delete(ctx context.Context, id int64) (*model.Todo, error) {
	return s.todos.Delete(ctx, id)
}

// DeleteAll removes every todo.
func (s *TodoService) DeleteAll(ctx context.Context) error {
	removed, err := s.todos.DeleteAll(ctx)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("removed", removed).Msg("all todos deleted")

	return nil
}

func blankTextError() error {
	return errs.NewBadRequestError("Validation failed: text must not be blank", nil, []errs.FieldError{
		{Field: "text", Error: "must not be blank"},
	})
}
