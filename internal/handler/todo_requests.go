package handler

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/validation"
)

type ListTodosRequest struct{}

func (r *ListTodosRequest) Validate() error {
	return nil
}

func (r *ListTodosRequest) QueryOnly() {}

type CreateTodoRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

func (r *CreateTodoRequest) Validate() error {
	return validation.Validator().Struct(r)
}

// IDParam is the `id` query parameter shared by the single-todo
// requests. Only a plain base-10 integer is accepted.
type IDParam struct {
	RawID string `query:"id" json:"-"`
	id    int64
}

func (p *IDParam) parse() error {
	id, err := strconv.ParseInt(p.RawID, 10, 64)
	if err != nil {
		return validation.CustomValidationErrors{
			{Field: "id", Message: "must be a valid integer"},
		}
	}
	p.id = id
	return nil
}

// TodoID returns the parsed id. Valid after Validate succeeded.
func (p *IDParam) TodoID() int64 {
	return p.id
}

// UpdateTodoRequest is a partial update: a missing or null field is left
// untouched. Completed takes any JSON value and keeps its truthiness.
type UpdateTodoRequest struct {
	IDParam
	Text      *string `json:"text" validate:"omitempty,notblank"`
	Completed any     `json:"completed"`
}

func (r *UpdateTodoRequest) Validate() error {
	if err := r.parse(); err != nil {
		return err
	}
	return validation.Validator().Struct(r)
}

// Patch builds the store update from the fields present in the body.
func (r *UpdateTodoRequest) Patch() model.TodoPatch {
	var patch model.TodoPatch

	if r.Text != nil {
		patch.Text = r.Text
	}
	if r.Completed != nil {
		completed := validation.Truthy(r.Completed)
		patch.Completed = &completed
	}

	return patch
}

// ReplaceTodosRequest is the body of a bulk replace: a JSON array of
// todo-like objects. Any other JSON value fails validation.
type ReplaceTodosRequest struct {
	items   []any
	isArray bool
}

func (r *ReplaceTodosRequest) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		r.isArray = false
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	r.items = items
	r.isArray = true
	return nil
}

func (r *ReplaceTodosRequest) Validate() error {
	if !r.isArray {
		return validation.CustomValidationErrors{
			{Field: "body", Message: "must be an array of todos"},
		}
	}
	return nil
}

// Todos normalizes every element into a row to insert: text defaults to ""
// and completed to its truthiness. Elements that are not objects become
// empty todos.
func (r *ReplaceTodosRequest) Todos() []model.NewTodo {
	todos := make([]model.NewTodo, 0, len(r.items))

	for _, item := range r.items {
		fields, _ := item.(map[string]any)
		todos = append(todos, model.NewTodo{
			Text:      validation.TextOf(fields["text"]),
			Completed: validation.Truthy(fields["completed"]),
		})
	}

	return todos
}

type DeleteTodoRequest struct {
	IDParam
}

func (r *DeleteTodoRequest) Validate() error {
	return r.parse()
}

func (r *DeleteTodoRequest) QueryOnly() {}

type DeleteAllTodosRequest struct{}

func (r *DeleteAllTodosRequest) Validate() error {
	return nil
}

func (r *DeleteAllTodosRequest) QueryOnly() {}
