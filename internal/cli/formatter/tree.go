package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// TaskRow is a single rendered line of the task tree.
type TaskRow struct {
	Task   domain.Task
	Depth  int
	IsLast bool
	Due    *time.Time // effective due date, for the badge
}

// RowsFromTree flattens a built forest into render rows, marking the
// last sibling at each level and resolving effective due dates.
func RowsFromTree(roots []*domain.TreeNode, all []domain.Task) []TaskRow {
	var rows []TaskRow
	var walk func(n *domain.TreeNode, isLast bool)
	walk = func(n *domain.TreeNode, isLast bool) {
		rows = append(rows, TaskRow{
			Task:   n.Task,
			Depth:  n.Depth,
			IsLast: isLast,
			Due:    domain.EffectiveDueDate(n.Task, all),
		})
		for i, c := range n.Children {
			walk(c, i == len(n.Children)-1)
		}
	}
	for i, r := range roots {
		walk(r, i == len(roots)-1)
	}
	return rows
}

// RenderTaskTree renders rows as an indented tree with box-drawing
// connectors. Completed tasks get a green ✔ and a dimmed title; due
// badges are right-aligned.
func RenderTaskTree(rows []TaskRow, now time.Time) string {
	if len(rows) == 0 {
		return Dim("No tasks.") + "\n"
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(rows))
	maxContentWidth := 0

	for idx, row := range rows {
		var prefix string
		if row.Depth > 0 {
			for i := 1; i < row.Depth; i++ {
				prefix += treePipe
			}
			if row.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := row.Task.Title
		statusPrefix := StyleDim.Render("· ")
		if row.Task.Completed {
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		}

		content := prefix + statusPrefix + title
		if tags := TagBadges(row.Task.Tags); tags != "" {
			content += " " + tags
		}
		lines[idx].content = content

		if row.Due != nil {
			lines[idx].badge = StyleBlue.Render("[ ") + DueBadge(*row.Due, now) + StyleBlue.Render(" ]")
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

// RenderFlatList renders view results as one line per task with an
// optional breadcrumb and due badge.
func RenderFlatList(tasks []domain.Task, all []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}

	var b strings.Builder
	for _, t := range tasks {
		statusPrefix := StyleDim.Render("· ")
		title := t.Title
		if t.Completed {
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		}
		b.WriteString(fmt.Sprintf("%s %s%s", TruncID(t.ID), statusPrefix, title))

		if tags := TagBadges(t.Tags); tags != "" {
			b.WriteString(" " + tags)
		}
		if crumb := Breadcrumb(domain.AncestorTitles(t.ID, all)); crumb != "" {
			b.WriteString("  " + crumb)
		}
		if due := domain.EffectiveDueDate(t, all); due != nil {
			b.WriteString("  " + DueBadge(*due, now))
		}
		b.WriteString("\n")
	}
	return b.String()
}
