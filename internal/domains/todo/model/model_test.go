package model_test

import (
	"backoffice/internal/domains/todo/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestTodo_DateKind(t *testing.T) {
	tests := []struct {
		name string
		todo model.Todo
		want string
	}{
		{name: "no dates", todo: model.Todo{}, want: model.DateKindNone},
		{name: "empty strings", todo: model.Todo{StartDate: ptr(""), DueDate: ptr("")}, want: model.DateKindNone},
		{name: "span", todo: model.Todo{StartDate: ptr("2025-06-01T00:00:00Z"), EndDate: ptr("2025-06-03T00:00:00Z")}, want: model.DateKindPeriod},
		{name: "start only", todo: model.Todo{StartDate: ptr("2025-06-01T00:00:00Z")}, want: model.DateKindNone},
		{name: "due", todo: model.Todo{DueDate: ptr("2025-06-15T00:00:00Z")}, want: model.DateKindDue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.todo.DateKind())
		})
	}
}

func TestTodo_Days(t *testing.T) {
	todo := model.Todo{StartDate: ptr("2025-06-01T00:00:00Z"), EndDate: ptr("2025-06-03T09:30:00+09:00")}

	assert.Equal(t, "2025-06-01", todo.StartDay())
	assert.Equal(t, "2025-06-03", todo.EndDay())
	assert.Empty(t, todo.DueDay())
}
