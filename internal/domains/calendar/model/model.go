// Package model holds the month grid of the home calendar and the rules that
// place TODOs on its days.
package model

import (
	todoModel "backoffice/internal/domains/todo/model"
	"backoffice/shared/cache"
	"backoffice/shared/datefmt"
	"time"
)

// GridSize is six weeks of seven days.
const GridSize = 42

// middayHour anchors every calendar date at noon, since some zones skip local
// midnight on their DST transition day.
const middayHour = 12

const (
	cacheFamily = "calendar"
	cacheRange  = "range"

	MarkerForward  = "→"
	MarkerBackward = "←"
)

// RangeKey is the cache key of the TODOs between two days.
func RangeKey(startDate, endDate string) string {
	return cache.BuildKey(cacheFamily, cacheRange, startDate, endDate)
}

// RangePattern matches every cached range.
func RangePattern() string {
	return cache.BuildKey(cacheFamily, cacheRange, "*")
}

// Month is a calendar month in the application time zone.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normalizes out-of-range months, so month 13 of 2025 is January 2026.
func NewMonth(year int, month time.Month, loc *time.Location) Month {
	first := time.Date(year, month, 1, middayHour, 0, 0, 0, loc)

	return Month{Year: first.Year(), Month: first.Month()}
}

// First is noon of the first day.
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, middayHour, 0, 0, 0, loc)
}

// Last is noon of the final day of the month; day 0 of the next month.
func (m Month) Last(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month+1, 0, middayHour, 0, 0, 0, loc)
}

func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}

	return Month{Year: m.Year, Month: m.Month - 1}
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}

	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Entry is one TODO as drawn in one cell.
type Entry struct {
	Todo todoModel.Todo `json:"todo"`
	// Leading is set on the start and interior days of a span, Trailing on its end day.
	Leading  bool `json:"leading"`
	Trailing bool `json:"trailing"`
	Muted    bool `json:"muted"`
	Span     bool `json:"span"`
}

// Label is the title with its span markers.
func (e Entry) Label() string {
	label := e.Todo.Title

	if e.Leading {
		label = MarkerForward + " " + label
	}

	if e.Trailing {
		label += " " + MarkerBackward
	}

	return label
}

type Cell struct {
	Date           time.Time `json:"-"`
	Day            string    `json:"date"`
	IsCurrentMonth bool      `json:"is_current_month"`
	IsToday        bool      `json:"is_today"`
	Entries        []Entry   `json:"todos"`
}

func (c Cell) DayOfMonth() int {
	return c.Date.Day()
}

// BuildGrid lays out month starting on the Sunday on or before its first day.
// Dates are built from calendar components in loc at noon, and today is
// compared by local year, month and day.
func BuildGrid(month Month, today time.Time, loc *time.Location) [GridSize]Cell {
	var grid [GridSize]Cell

	first := month.First(loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayDay := datefmt.Day(today.In(loc))

	for i := range grid {
		date := time.Date(start.Year(), start.Month(), start.Day()+i, middayHour, 0, 0, 0, loc)
		day := datefmt.Day(date)

		grid[i] = Cell{
			Date:           date,
			Day:            day,
			IsCurrentMonth: date.Year() == month.Year && date.Month() == month.Month,
			IsToday:        day == todayDay,
		}
	}

	return grid
}

// Assign returns the entries of the TODOs falling on day (YYYY-MM-DD). Spans
// cover every day from start to end inclusive, due-date TODOs only their day,
// and TODOs with neither never appear. Days compare as strings.
func Assign(day string, todos []todoModel.Todo) []Entry {
	var entries []Entry

	for _, todo := range todos {
		switch {
		case todo.HasPeriod():
			start, end := todo.StartDay(), todo.EndDay()
			if day < start || day > end {
				continue
			}

			entries = append(entries, Entry{
				Todo:     todo,
				Span:     true,
				Leading:  day != end || start == end,
				Trailing: day == end,
				Muted:    todo.Completed,
			})
		case todo.HasDueDate():
			if day != todo.DueDay() {
				continue
			}

			entries = append(entries, Entry{Todo: todo, Muted: todo.Completed})
		}
	}

	return entries
}

// Fill assigns todos to every cell of grid.
func Fill(grid *[GridSize]Cell, todos []todoModel.Todo) {
	for i := range grid {
		grid[i].Entries = Assign(grid[i].Day, todos)
	}
}
