package timekit

import "time"

// Cell is one slot in a month grid: either a leading blank (Day zero) or a
// day of month 1..31.
type Cell struct {
	Day int `json:"day"`
}

// Empty reports whether the cell is a leading blank.
func (c Cell) Empty() bool { return c.Day == 0 }

// MonthGrid lays out a month for a seven-column calendar: first the blank
// cells that pad day 1 to its weekday column (relative to weekStart), then
// one cell per day of the month. Trailing blanks are a rendering concern and
// are not emitted.
//
// month is 1-based. The total cell count is always offset + DaysInMonth.
func MonthGrid(year, month int, weekStart time.Weekday) []Cell {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	days := DaysInMonth(year, month)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{Day: day})
	}
	return cells
}

// DaysInMonth returns the day count of a 1-based month, via day zero of the
// following month. The time package applies the Gregorian leap rule.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
