package domain

import "time"

// DefaultUpcomingDays is the window of the "upcoming" view.
const DefaultUpcomingDays = 7

// DayKeyLayout formats a local calendar day as a bucket key.
const DayKeyLayout = "2006-01-02"

// StartOfDay returns local midnight of t's calendar day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by whole calendar days. Calendar arithmetic, not
// 24h multiples, so DST transitions don't shift the day boundary.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// SameDay reports whether a and b fall on the same local calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WithinNextDays reports whether date falls strictly after local
// midnight of from and strictly before local midnight of from+days.
// Both boundaries are excluded.
func WithinNextDays(date, from time.Time, days int) bool {
	start := StartOfDay(from)
	end := StartOfDay(AddDays(from, days))
	return date.After(start) && date.Before(end)
}

// DayKey returns the calendar-day bucket key for t.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// DayCell is one cell of a calendar grid. Leading cells before day 1
// of a month are blank: Day is 0 and Date is the zero time.
type DayCell struct {
	Day  int
	Date time.Time
}

// Blank reports whether the cell is a leading filler before day 1.
func (c DayCell) Blank() bool {
	return c.Day == 0
}

// MonthGrid produces the cells of a Sunday-first month view: one blank
// cell per weekday before day 1, then one cell per day of the month.
func MonthGrid(year int, month time.Month) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]DayCell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, DayCell{})
	}
	for d := 1; d <= daysInMonth; d++ {
		cells = append(cells, DayCell{
			Day:  d,
			Date: time.Date(year, month, d, 0, 0, 0, 0, time.Local),
		})
	}
	return cells
}

// WeekStart returns local midnight of the Sunday starting t's week.
func WeekStart(t time.Time) time.Time {
	day := StartOfDay(t)
	return AddDays(day, -int(day.Weekday()))
}

// WeekGrid produces 7 consecutive day cells starting at the Sunday of
// t's week.
func WeekGrid(t time.Time) []DayCell {
	start := WeekStart(t)
	cells := make([]DayCell, 7)
	for i := range cells {
		d := AddDays(start, i)
		cells[i] = DayCell{Day: d.Day(), Date: d}
	}
	return cells
}
