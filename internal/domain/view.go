package domain

import (
	"fmt"
	"strings"
	"time"
)

// View names a filter over the live task collection.
type View string

const (
	ViewInbox     View = "inbox"
	ViewToday     View = "today"
	ViewUpcoming  View = "upcoming"
	ViewCompleted View = "completed"
	ViewCalendar  View = "calendar"
)

// Views lists every view in display order.
var Views = []View{ViewInbox, ViewToday, ViewUpcoming, ViewCompleted, ViewCalendar}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q (inbox|today|upcoming|completed|calendar)", s)
}

// IsVisible reports whether a task shows in the given view at time now.
// The task collection is needed to resolve inherited due dates.
// Soft-deleted tasks are visible nowhere. The calendar view is always
// false here: it is fed by CalendarBuckets, not a per-task predicate.
func IsVisible(t Task, v View, now time.Time, tasks []Task) bool {
	return IsVisibleWindow(t, v, now, tasks, DefaultUpcomingDays)
}

// IsVisibleWindow is IsVisible with a configurable "upcoming" window.
func IsVisibleWindow(t Task, v View, now time.Time, tasks []Task, upcomingDays int) bool {
	if t.Deleted() {
		return false
	}
	due := EffectiveDueDate(t, tasks)
	switch v {
	case ViewInbox:
		return due == nil
	case ViewToday:
		return due != nil && SameDay(*due, now)
	case ViewUpcoming:
		return due != nil && !SameDay(*due, now) && WithinNextDays(*due, now, upcomingDays)
	case ViewCompleted:
		return t.Completed
	default:
		return false
	}
}

// MatchesSearch reports whether a task matches a free-text query. A
// blank query matches everything; otherwise the query must be a
// case-insensitive substring of the title or of any tag.
func MatchesSearch(t Task, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// CalendarBuckets groups live leaf tasks by the day key of their
// effective due date. Tasks with live children are represented through
// their children's dates and never bucketed themselves; tasks with no
// effective due date are skipped.
func CalendarBuckets(tasks []Task) map[string][]Task {
	hasLiveChild := make(map[string]bool)
	for _, t := range liveTasks(tasks) {
		if t.ParentID != nil {
			hasLiveChild[*t.ParentID] = true
		}
	}

	buckets := make(map[string][]Task)
	for _, t := range liveTasks(tasks) {
		if hasLiveChild[t.ID] {
			continue
		}
		due := EffectiveDueDate(t, tasks)
		if due == nil {
			continue
		}
		key := DayKey(*due)
		buckets[key] = append(buckets[key], t)
	}
	return buckets
}
