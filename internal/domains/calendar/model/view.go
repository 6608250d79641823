package model

// View is everything the calendar partial renders.
type View struct {
	Month Month          `json:"-"`
	Year  int            `json:"year"`
	Num   int            `json:"month"`
	Title string         `json:"title"`
	Prev  Month          `json:"-"`
	Next  Month          `json:"-"`
	Cells [GridSize]Cell `json:"cells"`
	Error string         `json:"error,omitempty"`
}

func NewView(month Month, cells [GridSize]Cell) View {
	return View{
		Month: month,
		Year:  month.Year,
		Num:   int(month.Month),
		Title: month.String(),
		Prev:  month.Prev(),
		Next:  month.Next(),
		Cells: cells,
	}
}

// Weeks splits the cells into rows of seven.
func (v View) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, GridSize/7)
	for i := 0; i < GridSize; i += 7 {
		weeks = append(weeks, v.Cells[i:i+7])
	}

	return weeks
}
