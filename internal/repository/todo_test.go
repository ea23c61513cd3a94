package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/deppfellow/todos/internal/config"
	"github.com/deppfellow/todos/internal/database"
	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/sqlerr"
)

// newTestRepository connects to the database named by TODOS_TEST_DATABASE_URL,
// migrates it and empties the todos table. The test is skipped without it.
func newTestRepository(t *testing.T) *TodoRepository {
	t.Helper()

	url := os.Getenv("TODOS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TODOS_TEST_DATABASE_URL not set")
	}

	cfg := &config.DatabaseConfig{
		URL:       url,
		AccessKey: os.Getenv("TODOS_TEST_DATABASE_ACCESS_KEY"),
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	if err := database.Migrate(ctx, &logger, cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	poolConfig, err := database.ParseConfig(cfg)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	repo := NewTodoRepository(pool)
	if _, err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	return repo
}

func TestTodoRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	inserted, err := repo.Insert(ctx, []model.NewTodo{
		{Text: "a"},
		{Text: "b", Completed: true},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("expected 2 inserted, got %d", len(inserted))
	}
	if inserted[1].Text != "b" || !inserted[1].Completed {
		t.Fatalf("unexpected row %+v", inserted[1])
	}

	text := "a, edited"
	updated, err := repo.Update(ctx, inserted[0].ID, model.TodoPatch{Text: &text})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Text != text || updated.Completed {
		t.Fatalf("unexpected row %+v", updated)
	}

	unchanged, err := repo.Update(ctx, inserted[0].ID, model.TodoPatch{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if unchanged.Text != text {
		t.Fatalf("expected %q, got %q", text, unchanged.Text)
	}

	deleted, err := repo.Delete(ctx, inserted[1].ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != inserted[1].ID {
		t.Fatalf("expected id %d, got %d", inserted[1].ID, deleted.ID)
	}

	todos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != inserted[0].ID {
		t.Fatalf("unexpected todos %+v", todos)
	}
}

func TestTodoRepositoryNotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Update(ctx, 999999, model.TodoPatch{}); !sqlerr.IsNotFound(err) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if _, err := repo.Delete(ctx, 999999); !sqlerr.IsNotFound(err) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestTodoRepositoryInsertNothing(t *testing.T) {
	repo := newTestRepository(t)

	inserted, err := repo.Insert(context.Background(), nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if inserted == nil || len(inserted) != 0 {
		t.Fatalf("expected an empty slice, got %#v", inserted)
	}
}
