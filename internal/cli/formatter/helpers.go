package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueBadge returns a relative due-date string with urgency coloring:
// red when overdue or within two days, yellow within the week.
func DueBadge(due time.Time, now time.Time) string {
	text := RelativeDateFrom(due, now)
	days := int(math.Round(due.Sub(now).Hours() / 24))

	switch {
	case days < 0:
		return StyleRed.Render(text)
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TagBadges renders "#tag" markers in the tag color.
func TagBadges(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	marked := make([]string, len(tags))
	for i, tag := range tags {
		marked[i] = "#" + tag
	}
	return StylePurple.Render(strings.Join(marked, " "))
}

// Breadcrumb renders ancestor titles topmost-first, dimmed, e.g.
// "Projects › House".
func Breadcrumb(titles []string) string {
	if len(titles) == 0 {
		return ""
	}
	reversed := make([]string, len(titles))
	for i, title := range titles {
		reversed[len(titles)-1-i] = title
	}
	return StyleDim.Render(strings.Join(reversed, " › "))
}
