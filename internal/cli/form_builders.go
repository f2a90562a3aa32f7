package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/burrow/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// promptAddForm collects a title and optional due date interactively.
// The due flag is filled in place when a date is entered.
func promptAddForm(due *dateFlag) (string, error) {
	var title, dueStr string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("Buy milk #errand").
				Value(&title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD, blank for none)").
				Placeholder("2025-06-30").
				Value(&dueStr).
				Validate(validateOptionalDate),
		),
	).WithTheme(burrowHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	if dueStr != "" {
		if err := due.Set(dueStr); err != nil {
			return "", err
		}
	}
	return title, nil
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func burrowHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
