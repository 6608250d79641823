package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"backoffice/infras/backend"
	"backoffice/internal/domains/todo/model"
	"backoffice/internal/domains/todo/model/dto"
	"backoffice/shared/constant"
	"backoffice/shared/pager"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	routeTodos           = "/todos"
	routeTodo            = "/todos/{id}"
	routeTodosByDate     = "/todos/date"
	routeTodosByRange    = "/todos/date-range"
	routeTodosWithoutDue = "/todos/without-due-date"

	paramStartDate = "start_date"
	paramEndDate   = "end_date"
)

type Todo interface {
	GetAll(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id string) (model.Todo, error)
	Create(ctx context.Context, payload dto.Payload) (model.Todo, error)
	Update(ctx context.Context, id string, payload dto.Payload) (model.Todo, error)
	Delete(ctx context.Context, id string) error
	// GetByDate and GetByDateRange take YYYY-MM-DD days.
	GetByDate(ctx context.Context, date string) ([]model.Todo, error)
	GetByDateRange(ctx context.Context, startDate, endDate string) ([]model.Todo, error)
	GetWithoutDueDate(ctx context.Context, cursor pager.Cursor) (dto.ListResponse, error)
}

type repositoryImpl struct {
	client backend.Client
}

func New(client backend.Client) Todo {
	return &repositoryImpl{client: client}
}

func todoPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

func (r *repositoryImpl) list(ctx context.Context, req backend.Request) (dto.ListResponse, error) {
	var res dto.ListResponse

	req.Method = http.MethodGet
	if req.Route == "" {
		req.Route = req.Path
	}

	if err := r.client.Do(ctx, req, &res); err != nil {
		return res, err //nolint:wrapcheck
	}

	return res, nil
}

func (r *repositoryImpl) GetAll(ctx context.Context) ([]model.Todo, error) {
	res, err := r.list(ctx, backend.Request{Path: routeTodos, Fallback: "Failed to fetch todo list"})
	if err != nil {
		return nil, fmt.Errorf("failed to get todos: %w", err)
	}

	return res.Todos, nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Todo, error) {
	var todo model.Todo

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodGet,
		Path:     todoPath(id),
		Route:    routeTodo,
		Fallback: "Failed to fetch todo",
	}, &todo)
	if err != nil {
		return todo, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

func (r *repositoryImpl) Create(ctx context.Context, payload dto.Payload) (model.Todo, error) {
	var todo model.Todo

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPost,
		Path:     routeTodos,
		Route:    routeTodos,
		JSON:     payload,
		Fallback: "Failed to create todo",
	}, &todo)
	if err != nil {
		return todo, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id string, payload dto.Payload) (model.Todo, error) {
	var todo model.Todo

	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodPut,
		Path:     todoPath(id),
		Route:    routeTodo,
		JSON:     payload,
		Fallback: "Failed to update todo",
	}, &todo)
	if err != nil {
		return todo, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	err := r.client.Do(ctx, backend.Request{
		Method:   http.MethodDelete,
		Path:     todoPath(id),
		Route:    routeTodo,
		Fallback: "Failed to delete todo",
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}

func (r *repositoryImpl) GetByDate(ctx context.Context, date string) ([]model.Todo, error) {
	res, err := r.list(ctx, backend.Request{
		Path:     routeTodosByDate,
		Query:    url.Values{constant.RequestParamDate: {date}},
		Fallback: "Failed to fetch todos by date",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get todos by date: %w", err)
	}

	return res.Todos, nil
}

func (r *repositoryImpl) GetByDateRange(ctx context.Context, startDate, endDate string) ([]model.Todo, error) {
	res, err := r.list(ctx, backend.Request{
		Path:     routeTodosByRange,
		Query:    url.Values{paramStartDate: {startDate}, paramEndDate: {endDate}},
		Fallback: "Failed to fetch todos by date range",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get todos by date range: %w", err)
	}

	return res.Todos, nil
}

func (r *repositoryImpl) GetWithoutDueDate(ctx context.Context, cursor pager.Cursor) (dto.ListResponse, error) {
	res, err := r.list(ctx, backend.Request{
		Path: routeTodosWithoutDue,
		Query: url.Values{
			constant.RequestParamOffset: {strconv.Itoa(cursor.Offset)},
			constant.RequestParamLimit:  {strconv.Itoa(cursor.Limit)},
		},
		Fallback: "Failed to fetch todos without due date",
	})
	if err != nil {
		return res, fmt.Errorf("failed to get todos without due date: %w", err)
	}

	return res, nil
}
