package model

import (
	"backoffice/shared/datefmt"
)

const (
	EntityName = "todo"

	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDateKind    = "date_kind"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldDueDate     = "due_date"
	FieldCompleted   = "completed"
)

// Date kinds offered by the TODO form. A TODO carries either a period or a due date, never both.
const (
	DateKindNone   = "none"
	DateKindPeriod = "period"
	DateKindDue    = "due"
)

type Todo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func present(value *string) bool {
	return value != nil && *value != ""
}

// HasPeriod reports a span TODO: both start and end dates set.
func (t Todo) HasPeriod() bool {
	return present(t.StartDate) && present(t.EndDate)
}

// HasDueDate reports a due-date TODO. A span TODO is never treated as one.
func (t Todo) HasDueDate() bool {
	return !t.HasPeriod() && present(t.DueDate)
}

func (t Todo) DateKind() string {
	switch {
	case t.HasPeriod():
		return DateKindPeriod
	case t.HasDueDate():
		return DateKindDue
	}

	return DateKindNone
}

// StartDay, EndDay and DueDay return the YYYY-MM-DD part of the dates, "" when unset.
func (t Todo) StartDay() string { return day(t.StartDate) }
func (t Todo) EndDay() string   { return day(t.EndDate) }
func (t Todo) DueDay() string   { return day(t.DueDate) }

func (t Todo) DescriptionText() string {
	if t.Description == nil {
		return ""
	}

	return *t.Description
}

func day(value *string) string {
	if value == nil {
		return ""
	}

	return datefmt.DatePart(*value)
}
