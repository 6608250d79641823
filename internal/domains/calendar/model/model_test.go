package model_test

import (
	"backoffice/internal/domains/calendar/model"
	todoModel "backoffice/internal/domains/todo/model"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestBuildGrid(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	today := time.Date(2025, time.June, 18, 23, 30, 0, 0, jakarta)

	grid := model.BuildGrid(model.Month{Year: 2025, Month: time.June}, today, jakarta)

	require.Len(t, grid, 42)
	assert.Equal(t, time.Sunday, grid[0].Date.Weekday())
	// June 1, 2025 is a Sunday, so the grid starts on it.
	assert.Equal(t, "2025-06-01", grid[0].Day)
	assert.True(t, grid[0].IsCurrentMonth)
	assert.Equal(t, "2025-06-30", grid[29].Day)
	assert.False(t, grid[30].IsCurrentMonth)
	assert.Equal(t, "2025-07-12", grid[41].Day)

	var todays []string
	for _, cell := range grid {
		if cell.IsToday {
			todays = append(todays, cell.Day)
		}
	}

	assert.Equal(t, []string{"2025-06-18"}, todays)
}

func TestBuildGrid_LeadingDaysFromPreviousMonth(t *testing.T) {
	grid := model.BuildGrid(model.Month{Year: 2025, Month: time.January}, time.Time{}, time.UTC)

	// January 1, 2025 is a Wednesday.
	assert.Equal(t, "2024-12-29", grid[0].Day)
	assert.False(t, grid[0].IsCurrentMonth)
	assert.Equal(t, "2025-01-01", grid[3].Day)
	assert.True(t, grid[3].IsCurrentMonth)

	for i, cell := range grid {
		assert.Equal(t, time.Weekday(i%7), cell.Date.Weekday())
	}
}

func TestBuildGrid_MidnightTransitionZones(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	// Clocks in Santiago jump from 00:00 to 01:00 on September 7, 2025.
	grid := model.BuildGrid(model.Month{Year: 2025, Month: time.September}, time.Time{}, santiago)

	assert.Equal(t, "2025-08-31", grid[0].Day)
	assert.Equal(t, "2025-09-07", grid[7].Day)
	assert.Equal(t, 7, grid[7].DayOfMonth())
	assert.Equal(t, "2025-09-30", model.Month{Year: 2025, Month: time.September}.Last(santiago).Format(time.DateOnly))

	for _, name := range []string{"America/Santiago", "America/Havana", "Asia/Beirut"} {
		loc, err := time.LoadLocation(name)
		require.NoError(t, err)

		for year := 2020; year <= 2029; year++ {
			for month := time.January; month <= time.December; month++ {
				grid := model.BuildGrid(model.Month{Year: year, Month: month}, time.Time{}, loc)

				for i := 1; i < len(grid); i++ {
					prev := grid[i-1].Date
					want := time.Date(prev.Year(), prev.Month(), prev.Day()+1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
					require.Equal(t, want, grid[i].Day, "%s %d-%d cell %d", name, year, month, i)
				}
			}
		}
	}
}

func TestAssign_Span(t *testing.T) {
	span := todoModel.Todo{ID: "s", Title: "Trip", StartDate: ptr("2025-06-01T00:00:00Z"), EndDate: ptr("2025-06-03T00:00:00Z")}
	grid := model.BuildGrid(model.Month{Year: 2025, Month: time.June}, time.Time{}, time.UTC)
	model.Fill(&grid, []todoModel.Todo{span})

	var days []string
	for _, cell := range grid {
		if len(cell.Entries) > 0 {
			days = append(days, cell.Day)
		}
	}

	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, days)

	assert.Equal(t, "→ Trip", grid[0].Entries[0].Label())
	assert.Equal(t, "→ Trip", grid[1].Entries[0].Label())
	assert.Equal(t, "Trip ←", grid[2].Entries[0].Label())
}

func TestAssign_SpanLeavesNeighbouringDaysEmpty(t *testing.T) {
	span := todoModel.Todo{ID: "s", Title: "Trip", StartDate: ptr("2025-06-01T00:00:00Z"), EndDate: ptr("2025-06-03T00:00:00Z")}
	// May 2025 runs from April 27 to June 7, so both May 31 and June 4 are drawn.
	grid := model.BuildGrid(model.Month{Year: 2025, Month: time.May}, time.Time{}, time.UTC)
	model.Fill(&grid, []todoModel.Todo{span})

	entries := map[string]int{}
	for _, cell := range grid {
		entries[cell.Day] = len(cell.Entries)
	}

	require.Contains(t, entries, "2025-05-31")
	require.Contains(t, entries, "2025-06-04")
	assert.Zero(t, entries["2025-05-31"])
	assert.Zero(t, entries["2025-06-04"])
	assert.Equal(t, 1, entries["2025-06-01"])
	assert.Equal(t, 1, entries["2025-06-02"])
	assert.Equal(t, 1, entries["2025-06-03"])
}

func TestAssign_OneDaySpanHasBothMarkers(t *testing.T) {
	span := todoModel.Todo{Title: "Offsite", StartDate: ptr("2025-06-05T00:00:00Z"), EndDate: ptr("2025-06-05T00:00:00Z")}

	entries := model.Assign("2025-06-05", []todoModel.Todo{span})
	require.Len(t, entries, 1)
	assert.Equal(t, "→ Offsite ←", entries[0].Label())
}

func TestAssign_DueDate(t *testing.T) {
	due := todoModel.Todo{Title: "Pay", DueDate: ptr("2025-06-15T00:00:00Z"), Completed: true}
	none := todoModel.Todo{Title: "Someday"}

	grid := model.BuildGrid(model.Month{Year: 2025, Month: time.June}, time.Time{}, time.UTC)
	model.Fill(&grid, []todoModel.Todo{due, none})

	count := 0
	for _, cell := range grid {
		for _, entry := range cell.Entries {
			count++
			assert.Equal(t, "2025-06-15", cell.Day)
			assert.True(t, entry.Muted)
			assert.Equal(t, "Pay", entry.Label())
		}
	}

	assert.Equal(t, 1, count)
}

func TestMonth_Navigation(t *testing.T) {
	assert.Equal(t, model.Month{Year: 2024, Month: time.December}, model.Month{Year: 2025, Month: time.January}.Prev())
	assert.Equal(t, model.Month{Year: 2026, Month: time.January}, model.Month{Year: 2025, Month: time.December}.Next())
	assert.Equal(t, model.Month{Year: 2025, Month: time.July}, model.Month{Year: 2025, Month: time.June}.Next())
	assert.Equal(t, model.Month{Year: 2026, Month: time.January}, model.NewMonth(2025, 13, time.UTC))
	assert.Equal(t, "June 2025", model.Month{Year: 2025, Month: time.June}.String())
}

func TestMonth_Bounds(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)

	feb := model.Month{Year: 2024, Month: time.February}
	assert.Equal(t, "2024-02-01", feb.First(loc).Format(time.DateOnly))
	assert.Equal(t, "2024-02-29", feb.Last(loc).Format(time.DateOnly))
}

func TestRangeKey(t *testing.T) {
	assert.Equal(t, "calendar:range:2025-06-01:2025-06-30", model.RangeKey("2025-06-01", "2025-06-30"))
	assert.Equal(t, "calendar:range:*", model.RangePattern())
}
