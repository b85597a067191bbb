package calendar

import (
	"fmt"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/timecalc"
)

// GridCells is the number of cells in a month view: six Monday-first weeks.
const GridCells = 42

// Cell is one day of the month grid.
type Cell struct {
	DateKey string `json:"dateKey"`
	Day     int    `json:"day"`
	InMonth bool   `json:"inMonth"`
	IsToday bool   `json:"isToday"`
}

// BuildMonthGrid lays out monthKey (YYYY-MM) as 42 Monday-first cells,
// padded with days of the adjacent months. IsToday is evaluated against now,
// whose location is used for the grid.
func BuildMonthGrid(monthKey string, now time.Time) ([]Cell, error) {
	key, ok := timecalc.ParseMonthKey(monthKey)
	if !ok {
		return nil, fmt.Errorf("invalid month %q, want YYYY-MM", monthKey)
	}
	first, err := time.ParseInLocation(timecalc.MonthKeyLayout, key, now.Location())
	if err != nil {
		return nil, fmt.Errorf("parsing month %q: %w", monthKey, err)
	}
	monday, _ := timecalc.WeekRange(first)

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := monday.AddDate(0, 0, i)
		cells = append(cells, Cell{
			DateKey: d.Format(timecalc.DateKeyLayout),
			Day:     d.Day(),
			InMonth: d.Month() == first.Month(),
			IsToday: timecalc.SameDay(d, now),
		})
	}
	return cells, nil
}
