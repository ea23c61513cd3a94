package repository

import (
	"context"

	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const todosTable = "todos"

// querier is the part of *pgxpool.Pool the repository uses. A pgx.Tx
// satisfies it too.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TodoRepository stores todos in Postgres.
type TodoRepository struct {
	db querier
}

var _ TodoStore = (*TodoRepository)(nil)

// NewTodoRepository returns a repository running its queries on db.
func NewTodoRepository(db querier) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, text, completed, created_at
		FROM todos
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	todos, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	return todos, nil
}

// Insert writes all todos with a single statement, so either every row is
// stored or none is.
func (r *TodoRepository) Insert(ctx context.Context, todos []model.NewTodo) ([]model.Todo, error) {
	if len(todos) == 0 {
		return []model.Todo{}, nil
	}

	texts := make([]string, len(todos))
	completed := make([]bool, len(todos))
	for i, todo := range todos {
		texts[i] = todo.Text
		completed[i] = todo.Completed
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO todos (text, completed)
		SELECT * FROM unnest($1::text[], $2::boolean[])
		RETURNING id, text, completed, created_at`,
		texts, completed)
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	inserted, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	return inserted, nil
}

// Update only touches the columns present in patch. An empty patch is a
// plain read of the current row.
func (r *TodoRepository) Update(ctx context.Context, id int64, patch model.TodoPatch) (*model.Todo, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if patch.IsEmpty() {
		rows, err = r.db.Query(ctx, `
			SELECT id, text, completed, created_at
			FROM todos
			WHERE id = $1`,
			id)
	} else {
		rows, err = r.db.Query(ctx, `
			UPDATE todos
			SET text = COALESCE($2, text),
			    completed = COALESCE($3, completed)
			WHERE id = $1
			RETURNING id, text, completed, created_at`,
			id, patch.Text, patch.Completed)
	}
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	todo, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	return &todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) (*model.Todo, error) {
	rows, err := r.db.Query(ctx, `
		DELETE FROM todos
		WHERE id = $1
		RETURNING id, text, completed, created_at`,
		id)
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	todo, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Todo])
	if err != nil {
		return nil, sqlerr.Wrap(err, todosTable)
	}

	return &todo, nil
}

func (r *TodoRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos`)
	if err != nil {
		return 0, sqlerr.Wrap(err, todosTable)
	}

	return tag.RowsAffected(), nil
}
