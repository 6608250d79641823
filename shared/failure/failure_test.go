package failure_test

import (
	"backoffice/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "Failed to fetch media list",
	}

	if f.Error() != "Failed to fetch media list" {
		t.Errorf("expected error message to be 'Failed to fetch media list', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		result  error
		code    int
		message string
	}{
		{name: "New", result: failure.New(http.StatusConflict, "tag already exists"), code: http.StatusConflict, message: "tag already exists"},
		{name: "BadRequest", result: failure.BadRequest(errors.New("title is required")), code: http.StatusBadRequest, message: "title is required"},
		{name: "BadRequestFromString", result: failure.BadRequestFromString("invalid date"), code: http.StatusBadRequest, message: "invalid date"},
		{name: "Unauthorized", result: failure.Unauthorized("invalid credentials"), code: http.StatusUnauthorized, message: "invalid credentials"},
		{name: "InternalError", result: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
		{name: "BadGateway", result: failure.BadGateway("Failed to fetch tag list"), code: http.StatusBadGateway, message: "Failed to fetch tag list"},
		{name: "NotFound", result: failure.NotFound("media not found"), code: http.StatusNotFound, message: "media not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.result)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.NotFound("todo not found"),
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to get todo: %w", failure.New(http.StatusUnprocessableEntity, "bad dates")),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := failure.GetCode(tt.input); result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !failure.IsNotFound(fmt.Errorf("wrapped: %w", failure.NotFound("media not found"))) {
		t.Error("expected wrapped 404 to be reported as not found")
	}

	if failure.IsNotFound(nil) {
		t.Error("expected nil not to be reported as not found")
	}

	if failure.IsNotFound(failure.BadGateway("down")) {
		t.Error("expected 502 not to be reported as not found")
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("failed to create tag: %w", failure.New(http.StatusConflict, "tag name already taken"))

	if got := failure.Message(err); got != "tag name already taken" {
		t.Errorf("expected innermost failure message, got %s", got)
	}

	if got := failure.Message(errors.New("plain")); got != "plain" {
		t.Errorf("expected plain error text, got %s", got)
	}
}
