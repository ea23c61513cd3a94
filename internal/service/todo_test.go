package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/todos/internal/errs"
	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/repository"
	"github.com/deppfellow/todos/internal/sqlerr"
)

func TestCreateTrimsText(t *testing.T) {
	svc := NewTodoService(repository.NewMemoryTodoRepository())

	todo, err := svc.Create(context.Background(), "  buy milk  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.Text != "buy milk" {
		t.Fatalf("expected %q, got %q", "buy milk", todo.Text)
	}
	if todo.Completed {
		t.Fatal("expected a new todo to be open")
	}
}

func TestCreateRejectsBlankBeforeTheStore(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	svc := NewTodoService(repo)

	_, err := svc.Create(context.Background(), "   ")

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	todos, _ := repo.List(context.Background())
	if len(todos) != 0 {
		t.Fatalf("expected no todos, got %d", len(todos))
	}
}

func TestUpdateTrimsAndRejectsBlankText(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	svc := NewTodoService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "draft")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "  final  "
	updated, err := svc.Update(ctx, created.ID, model.TodoPatch{Text: &text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Text != "final" {
		t.Fatalf("expected %q, got %q", "final", updated.Text)
	}

	blank := " "
	if _, err := svc.Update(ctx, created.ID, model.TodoPatch{Text: &blank}); err == nil {
		t.Fatal("expected blank text to be rejected")
	}
}

func TestReplaceSwapsTheCollection(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	svc := NewTodoService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := svc.Replace(ctx, []model.NewTodo{{Text: "a"}, {Text: "b", Completed: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}

	todos, _ := svc.List(ctx)
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	for _, todo := range todos {
		if todo.Text == "old" {
			t.Fatal("expected old todo to be gone")
		}
	}
}

func TestReplaceWithNothingEmptiesTheCollection(t *testing.T) {
	svc := NewTodoService(repository.NewMemoryTodoRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := svc.Replace(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}

	todos, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", todos)
	}
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	svc := NewTodoService(repository.NewMemoryTodoRepository())

	if _, err := svc.Delete(context.Background(), 999999); !sqlerr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreFailuresPropagate(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	svc := NewTodoService(repo)

	repo.FailWith(errors.New("store offline"))

	if err := svc.DeleteAll(context.Background()); sqlerr.ErrCode(err) != sqlerr.Other {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.Replace(context.Background(), []model.NewTodo{{Text: "a"}}); err == nil {
		t.Fatal("expected replace to fail")
	}
}

func TestReplaceInsertFailureLeavesCollectionEmpty(t *testing.T) {
	repo := repository.NewMemoryTodoRepository()
	svc := NewTodoService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.FailInsertWith(errors.New("insert boom"))

	count, err := svc.Replace(ctx, []model.NewTodo{{Text: "a"}, {Text: "b"}})
	if sqlerr.ErrCode(err) != sqlerr.Other {
		t.Fatalf("expected store error, got %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}

	todos, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected the delete to have gone through, got %d todos", len(todos))
	}
}
