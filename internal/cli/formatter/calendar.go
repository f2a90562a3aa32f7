package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const calendarCellWidth = 5

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// RenderMonth renders a month grid. Days carrying bucketed tasks show
// their count; today is highlighted. A per-day task listing follows
// the grid.
func RenderMonth(year int, month time.Month, buckets map[string][]domain.Task, now time.Time) string {
	var b strings.Builder
	title := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	b.WriteString(Header(title) + "\n")
	b.WriteString(renderWeekdayHeader() + "\n")

	cells := domain.MonthGrid(year, month)
	for i, cell := range cells {
		b.WriteString(renderCell(cell, buckets, now))
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	if len(cells)%7 != 0 {
		b.WriteString("\n")
	}

	b.WriteString(renderDayListing(cells, buckets))
	return b.String()
}

// RenderWeek renders the 7-day row containing t, with the same day
// listing as the month view.
func RenderWeek(t time.Time, buckets map[string][]domain.Task, now time.Time) string {
	cells := domain.WeekGrid(t)

	var b strings.Builder
	title := fmt.Sprintf("Week of %s", cells[0].Date.Format("Jan 2, 2006"))
	b.WriteString(Header(title) + "\n")
	b.WriteString(renderWeekdayHeader() + "\n")
	for _, cell := range cells {
		b.WriteString(renderCell(cell, buckets, now))
	}
	b.WriteString("\n")
	b.WriteString(renderDayListing(cells, buckets))
	return b.String()
}

func renderWeekdayHeader() string {
	padded := make([]string, len(weekdayHeader))
	for i, d := range weekdayHeader {
		padded[i] = pad(d)
	}
	return Dim(strings.Join(padded, ""))
}

func renderCell(cell domain.DayCell, buckets map[string][]domain.Task, now time.Time) string {
	if cell.Blank() {
		return strings.Repeat(" ", calendarCellWidth)
	}

	label := fmt.Sprintf("%2d", cell.Day)
	if n := len(buckets[domain.DayKey(cell.Date)]); n > 0 {
		label = fmt.Sprintf("%2d•", cell.Day)
	}

	switch {
	case domain.SameDay(cell.Date, now):
		return pad(StyleHeader.Render(label))
	case len(buckets[domain.DayKey(cell.Date)]) > 0:
		return pad(StyleBlue.Render(label))
	default:
		return pad(StyleFg.Render(label))
	}
}

// pad right-pads a styled cell to the fixed column width, measuring
// only the visible label length.
func pad(label string) string {
	visible := lipgloss.Width(label)
	if visible >= calendarCellWidth {
		return label
	}
	return label + strings.Repeat(" ", calendarCellWidth-visible)
}

func renderDayListing(cells []domain.DayCell, buckets map[string][]domain.Task) string {
	var keys []string
	for _, cell := range cells {
		if cell.Blank() {
			continue
		}
		key := domain.DayKey(cell.Date)
		if len(buckets[key]) > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return Dim("Nothing scheduled.") + "\n"
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		day, _ := time.ParseInLocation(domain.DayKeyLayout, key, time.Local)
		b.WriteString("\n" + Bold(day.Format("Mon, Jan 2")) + "\n")
		for _, task := range buckets[key] {
			marker := StyleDim.Render("· ")
			title := task.Title
			if task.Completed {
				marker = StyleGreen.Render("✔ ")
				title = Dim(title)
			}
			b.WriteString("  " + marker + title + "\n")
		}
	}
	return b.String()
}
