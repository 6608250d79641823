package repository_test

import (
	"backoffice/config"
	"backoffice/infras/backend"
	"backoffice/infras/otel/mocks"
	"backoffice/internal/domains/todo/model"
	"backoffice/internal/domains/todo/model/dto"
	"backoffice/internal/domains/todo/repository"
	"backoffice/shared/failure"
	"backoffice/shared/pager"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, handler http.HandlerFunc) repository.Todo {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = server.URL + "/api/v1"

	return repository.New(backend.NewWithHTTPClient(cfg, mocks.NewOtel(), nil, server.Client()))
}

func TestTodoRepository_GetByDateRange(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/todos/date-range", r.URL.Path)
		assert.Equal(t, "2025-06-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-06-30", r.URL.Query().Get("end_date"))

		_, _ = w.Write([]byte(`{"todos":[{"id":"a","title":"Trip","start_date":"2025-06-01T00:00:00Z","end_date":"2025-06-03T00:00:00Z","completed":false}]}`))
	})

	todos, err := repo.GetByDateRange(t.Context(), "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].HasPeriod())
}

func TestTodoRepository_GetByDate(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/todos/date", r.URL.Path)
		assert.Equal(t, "2025-06-15", r.URL.Query().Get("date"))

		_, _ = w.Write([]byte(`{"todos":[{"id":"b","title":"Pay","due_date":"2025-06-15T00:00:00Z"}]}`))
	})

	todos, err := repo.GetByDate(t.Context(), "2025-06-15")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "2025-06-15", todos[0].DueDay())
}

func TestTodoRepository_GetWithoutDueDate(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/todos/without-due-date", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"todos":[{"id":"c","title":"Someday"}],"total":21,"offset":20,"limit":20,"has_more":false}`))
	})

	res, err := repo.GetWithoutDueDate(t.Context(), pager.Cursor{Offset: 20, Limit: 20})
	require.NoError(t, err)
	assert.False(t, res.HasMore)
	require.NotNil(t, res.Total)
	assert.Equal(t, 21, *res.Total)
}

func TestTodoRepository_CreateAndUpdate(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
	)

	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mu.Lock()
		bodies = append(bodies, r.Method+" "+r.URL.Path+" "+string(body))
		mu.Unlock()

		_, _ = w.Write([]byte(`{"id":"t1","title":"Trip"}`))
	})

	req := dto.TodoRequest{Title: "Trip", DateKind: model.DateKindDue, DueDate: "2025-06-15"}

	_, err := repo.Create(t.Context(), req.ToCreatePayload())
	require.NoError(t, err)

	_, err = repo.Update(t.Context(), "t1", req.ToUpdatePayload())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, bodies, 2)
	assert.Equal(t, `POST /api/v1/todos {"title":"Trip","due_date":"2025-06-15T00:00:00Z"}`, bodies[0])
	assert.Equal(t, `PUT /api/v1/todos/t1 {"title":"Trip","due_date":"2025-06-15T00:00:00Z","completed":false}`, bodies[1])
}

func TestTodoRepository_Fallbacks(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := repo.GetAll(t.Context())
	assert.Equal(t, "Failed to fetch todo list", failure.Message(err))

	_, err = repo.Get(t.Context(), "t1")
	assert.Equal(t, "Failed to fetch todo", failure.Message(err))

	_, err = repo.Create(t.Context(), dto.Payload{Title: "x"})
	assert.Equal(t, "Failed to create todo", failure.Message(err))

	_, err = repo.Update(t.Context(), "t1", dto.Payload{Title: "x"})
	assert.Equal(t, "Failed to update todo", failure.Message(err))

	assert.Equal(t, "Failed to delete todo", failure.Message(repo.Delete(t.Context(), "t1")))

	_, err = repo.GetByDate(t.Context(), "2025-06-15")
	assert.Equal(t, "Failed to fetch todos by date", failure.Message(err))

	_, err = repo.GetByDateRange(t.Context(), "2025-06-01", "2025-06-30")
	assert.Equal(t, "Failed to fetch todos by date range", failure.Message(err))

	_, err = repo.GetWithoutDueDate(t.Context(), pager.Cursor{Limit: 20})
	assert.Equal(t, "Failed to fetch todos without due date", failure.Message(err))
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}
