package dto

import (
	"backoffice/internal/domains/todo/model"
	"backoffice/shared"
	"backoffice/shared/datefmt"
	"backoffice/shared/validator"
	"net/http"
	"strings"
)

// TodoRequest is the create and edit form.
type TodoRequest struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"max=1000"`
	DateKind    string `form:"date_kind" validate:"required,oneof=none period due"`
	StartDate   string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string `form:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Completed   bool   `form:"completed"`
}

func (r *TodoRequest) FromRequest(request *http.Request) {
	r.Title = request.PostFormValue(model.FieldTitle)
	r.Description = request.PostFormValue(model.FieldDescription)
	r.DateKind = request.PostFormValue(model.FieldDateKind)
	r.StartDate = strings.TrimSpace(request.PostFormValue(model.FieldStartDate))
	r.EndDate = strings.TrimSpace(request.PostFormValue(model.FieldEndDate))
	r.DueDate = strings.TrimSpace(request.PostFormValue(model.FieldDueDate))
	r.Completed = shared.CheckboxChecked(request.PostFormValue(model.FieldCompleted))

	if r.DateKind == "" {
		r.DateKind = model.DateKindNone
	}
}

// FromModel prefills the edit form.
func (r *TodoRequest) FromModel(todo model.Todo) {
	r.Title = todo.Title
	r.Description = todo.DescriptionText()
	r.DateKind = todo.DateKind()
	r.StartDate = todo.StartDay()
	r.EndDate = todo.EndDay()
	r.DueDate = todo.DueDay()
	r.Completed = todo.Completed
}

// Validate checks the dates required by the chosen kind. Dates are YYYY-MM-DD so
// string order is date order.
func (r *TodoRequest) Validate() validator.FieldErrors {
	errs := validator.FieldErrors{}

	switch r.DateKind {
	case model.DateKindPeriod:
		if r.StartDate == "" {
			errs[model.FieldStartDate] = "start_date is required"
		}

		if r.EndDate == "" {
			errs[model.FieldEndDate] = "end_date is required"
		}

		if r.StartDate != "" && r.EndDate != "" && r.EndDate < r.StartDate {
			errs[model.FieldEndDate] = "end_date must not be before start_date"
		}
	case model.DateKindDue:
		if r.DueDate == "" {
			errs[model.FieldDueDate] = "due_date is required"
		}
	}

	return errs
}

// Payload is the backend body. Only the dates of the chosen kind are sent, normalized
// to midnight UTC; Completed is only sent on update.
type Payload struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (r *TodoRequest) ToCreatePayload() Payload {
	payload := Payload{Title: r.Title}

	if r.Description != "" {
		payload.Description = &r.Description
	}

	switch r.DateKind {
	case model.DateKindPeriod:
		payload.StartDate = datefmt.NormalizePtr(r.StartDate)
		payload.EndDate = datefmt.NormalizePtr(r.EndDate)
	case model.DateKindDue:
		payload.DueDate = datefmt.NormalizePtr(r.DueDate)
	}

	return payload
}

func (r *TodoRequest) ToUpdatePayload() Payload {
	payload := r.ToCreatePayload()
	completed := r.Completed
	payload.Completed = &completed

	return payload
}

// ListResponse is the backend list shape, paginated only for the no-due-date list.
type ListResponse struct {
	Todos   []model.Todo `json:"todos"`
	Total   *int         `json:"total,omitempty"`
	Offset  *int         `json:"offset,omitempty"`
	Limit   *int         `json:"limit,omitempty"`
	HasMore bool         `json:"has_more"`
}

// PageResponse answers the console's load-more endpoint.
type PageResponse struct {
	Todos   []model.Todo `json:"todos"`
	HTML    []string     `json:"html"`
	Loaded  bool         `json:"loaded"`
	Offset  int          `json:"offset"`
	HasMore bool         `json:"has_more"`
	Error   string       `json:"error,omitempty"`
}
