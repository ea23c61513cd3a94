package handler

import (
	"net/http"

	"github.com/deppfellow/todos/internal/errs"
	"github.com/deppfellow/todos/internal/model"
	"github.com/deppfellow/todos/internal/server"
	"github.com/deppfellow/todos/internal/service"
	"github.com/labstack/echo/v4"
)

// Success messages of the collection-level operations.
const (
	msgTodosReplaced   = "Todos replaced successfully"
	msgTodoDeleted     = "Todo deleted successfully"
	msgAllTodosDeleted = "All todos deleted successfully"
)

// TodoHandler serves /api/todos. Every method arrives at Dispatch, which
// picks the operation from the method and the presence of an id query
// parameter.
type TodoHandler struct {
	Handler
	todoService *service.TodoService

	list      echo.HandlerFunc
	create    echo.HandlerFunc
	update    echo.HandlerFunc
	replace   echo.HandlerFunc
	remove    echo.HandlerFunc
	removeAll echo.HandlerFunc
}

func NewTodoHandler(s *server.Server, todoService *service.TodoService) *TodoHandler {
	h := &TodoHandler{
		Handler:     NewHandler(s),
		todoService: todoService,
	}

	h.list = Handle(h.Handler, h.ListTodos, http.StatusOK,
		func() *ListTodosRequest { return &ListTodosRequest{} })
	h.create = Handle(h.Handler, h.CreateTodo, http.StatusCreated,
		func() *CreateTodoRequest { return &CreateTodoRequest{} })
	h.update = Handle(h.Handler, h.UpdateTodo, http.StatusOK,
		func() *UpdateTodoRequest { return &UpdateTodoRequest{} })
	h.replace = Handle(h.Handler, h.ReplaceTodos, http.StatusOK,
		func() *ReplaceTodosRequest { return &ReplaceTodosRequest{} })
	h.remove = Handle(h.Handler, h.DeleteTodo, http.StatusOK,
		func() *DeleteTodoRequest { return &DeleteTodoRequest{} })
	h.removeAll = Handle(h.Handler, h.DeleteAllTodos, http.StatusOK,
		func() *DeleteAllTodosRequest { return &DeleteAllTodosRequest{} })

	return h
}

// Dispatch routes one /api/todos request.
//
//	GET              list
//	POST             create
//	PUT    ?id=N     update one
//	PUT              replace all
//	DELETE ?id=N     delete one
//	DELETE           delete all
//
// OPTIONS never gets here; the CORS middleware answers it. Any other
// method is rejected with 405.
func (h *TodoHandler) Dispatch(c echo.Context) error {
	_, hasID := c.QueryParams()["id"]

	switch method := c.Request().Method; method {
	case http.MethodGet:
		return h.list(c)
	case http.MethodPost:
		return h.create(c)
	case http.MethodPut:
		if hasID {
			return h.update(c)
		}
		return h.replace(c)
	case http.MethodDelete:
		if hasID {
			return h.remove(c)
		}
		return h.removeAll(c)
	default:
		return errs.NewMethodNotAllowedError(method)
	}
}

// todoList is a list response; Len feeds the response.items attribute.
type todoList []model.Todo

func (l todoList) Len() int { return len(l) }

func (h *TodoHandler) ListTodos(c echo.Context, _ *ListTodosRequest) (todoList, error) {
	todos, err := h.todoService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return todoList(todos), nil
}

func (h *TodoHandler) CreateTodo(c echo.Context, req *CreateTodoRequest) (*model.Todo, error) {
	return h.todoService.Create(c.Request().Context(), req.Text)
}

func (h *TodoHandler) UpdateTodo(c echo.Context, req *UpdateTodoRequest) (*model.Todo, error) {
	return h.todoService.Update(c.Request().Context(), req.TodoID(), req.Patch())
}

// ReplaceTodosResponse reports how many todos a bulk replace inserted.
type ReplaceTodosResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

func (h *TodoHandler) ReplaceTodos(c echo.Context, req *ReplaceTodosRequest) (*ReplaceTodosResponse, error) {
	count, err := h.todoService.Replace(c.Request().Context(), req.Todos())
	if err != nil {
		return nil, err
	}

	return &ReplaceTodosResponse{
		Message: msgTodosReplaced,
		Count:   count,
	}, nil
}

// DeleteTodoResponse carries the deleted todo as it was.
type DeleteTodoResponse struct {
	Message string      `json:"message"`
	Todo    *model.Todo `json:"todo"`
}

func (h *TodoHandler) DeleteTodo(c echo.Context, req *DeleteTodoRequest) (*DeleteTodoResponse, error) {
	todo, err := h.todoService.Delete(c.Request().Context(), req.TodoID())
	if err != nil {
		return nil, err
	}

	return &DeleteTodoResponse{
		Message: msgTodoDeleted,
		Todo:    todo,
	}, nil
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *TodoHandler) DeleteAllTodos(c echo.Context, _ *DeleteAllTodosRequest) (*MessageResponse, error) {
	if err := h.todoService.DeleteAll(c.Request().Context()); err != nil {
		return nil, err
	}

	return &MessageResponse{Message: msgAllTodosDeleted}, nil
}
