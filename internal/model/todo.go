// Package model holds the todo entity and the payloads used to create
// and change it.
package model

import "time"

// Todo is a stored todo item. ID and CreatedAt are assigned by the store.
type Todo struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewTodo is one row to insert.
type NewTodo struct {
	Text      string
	Completed bool
}

// TodoPatch is a partial update. A nil field is left untouched.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil
}

// Apply returns todo with the present patch fields applied.
func (p TodoPatch) Apply(todo Todo) Todo {
	if p.Text != nil {
		todo.Text = *p.Text
	}
	if p.Completed != nil {
		todo.Completed = *p.Completed
	}
	return todo
}
