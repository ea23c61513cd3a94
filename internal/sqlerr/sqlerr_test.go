package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/todos/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapNoRowsIsNotFound(t *testing.T) {
	err := Wrap(fmt.Errorf("update todo: %w", pgx.ErrNoRows), "todos")

	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", ErrCode(err))
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatal("expected wrapped error to keep the driver error")
	}
}

func TestWrapPgErrorMapsCode(t *testing.T) {
	tests := []struct {
		sqlState string
		want     Code
	}{
		{sqlState: "23505", want: Conflict},
		{sqlState: "23503", want: ForeignKeyViolation},
		{sqlState: "23502", want: NotNullViolation},
		{sqlState: "23514", want: CheckViolation},
		{sqlState: "08006", want: Unavailable},
		{sqlState: "42P01", want: Other},
	}

	for _, tt := range tests {
		t.Run(tt.sqlState, func(t *testing.T) {
			err := Wrap(&pgconn.PgError{Code: tt.sqlState, Severity: "ERROR", Message: "boom"}, "todos")
			if got := ErrCode(err); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWrapLeavesStoreErrorsAlone(t *testing.T) {
	original := NewNotFound("todos")
	if got := Wrap(original, "other"); got != error(original) {
		t.Fatalf("expected the same error back, got %v", got)
	}
	if Wrap(nil, "todos") != nil {
		t.Fatal("expected nil to stay nil")
	}
}

func TestWrapContextErrorsAreUnavailable(t *testing.T) {
	if got := ErrCode(Wrap(context.DeadlineExceeded, "todos")); got != Unavailable {
		t.Fatalf("expected unavailable, got %q", got)
	}
}

func TestErrCodeOfForeignError(t *testing.T) {
	if got := ErrCode(errors.New("plain")); got != Other {
		t.Fatalf("expected other, got %q", got)
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantCode    string
	}{
		{
			name:        "not found",
			err:         NewNotFound("todos"),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Todo not found",
			wantCode:    "TODO_NOT_FOUND",
		},
		{
			name: "conflict with constraint column",
			err: Wrap(&pgconn.PgError{
				Code:           "23505",
				Message:        "duplicate key value violates unique constraint",
				TableName:      "todos",
				ConstraintName: "todos_text_key",
			}, "todos"),
			wantStatus:  http.StatusConflict,
			wantMessage: "A todo with this Text already exists",
			wantCode:    "TODO_ALREADY_EXISTS",
		},
		{
			name: "not null",
			err: Wrap(&pgconn.PgError{
				Code:       "23502",
				Message:    "null value in column",
				TableName:  "todos",
				ColumnName: "text",
			}, "todos"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "The Text is required",
			wantCode:    "TODO_REQUIRED",
		},
		{
			name:        "other store failure keeps store message",
			err:         Wrap(&pgconn.PgError{Code: "42P01", Message: `relation "todos" does not exist`}, "todos"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: `relation "todos" does not exist`,
			wantCode:    "INTERNAL_SERVER_ERROR",
		},
		{
			name:        "non store error is generic",
			err:         errors.New("secret internals"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: http.StatusText(http.StatusInternalServerError),
			wantCode:    "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatal("expected *errs.HTTPError")
			}
			if httpErr.Status != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, httpErr.Status)
			}
			if httpErr.Message != tt.wantMessage {
				t.Fatalf("expected message %q, got %q", tt.wantMessage, httpErr.Message)
			}
			if httpErr.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, httpErr.Code)
			}
		})
	}
}

func TestHandleErrorPassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewMethodNotAllowedError("PATCH")
	if got := HandleError(original); got != error(original) {
		t.Fatalf("expected the same error back, got %v", got)
	}
}
