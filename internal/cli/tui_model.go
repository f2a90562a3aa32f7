package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/burrow/internal/cli/formatter"
	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// treeTab is the extra first tab showing the whole forest; the other
// tabs are the list views.
const treeTab = domain.View("tree")

var tuiTabs = []domain.View{treeTab, domain.ViewInbox, domain.ViewToday, domain.ViewUpcoming, domain.ViewCompleted}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	NextTab key.Binding
	Search  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete subtree")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// rowsLoadedMsg carries a freshly derived row set.
type rowsLoadedMsg struct {
	rows []formatter.TaskRow
	all  []domain.Task
}

type tuiModel struct {
	app  *App
	keys keyMap

	tab       int
	rows      []formatter.TaskRow
	all       []domain.Task
	cursor    int
	searching bool
	query     string
	width     int
	height    int
	quitting  bool
}

func newTUIModel(app *App) tuiModel {
	return tuiModel{app: app, keys: defaultKeyMap()}
}

func runTUI(app *App) error {
	_, err := tea.NewProgram(newTUIModel(app), tea.WithAltScreen()).Run()
	return err
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

func (m tuiModel) Init() tea.Cmd {
	return m.loadRows()
}

// loadRows derives the rows of the active tab from a fresh snapshot.
func (m tuiModel) loadRows() tea.Cmd {
	app := m.app
	tab := tuiTabs[m.tab]
	query := m.query
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		roots := app.Tasks.Tree(ctx)
		flat := domain.Flatten(roots)
		all := make([]domain.Task, len(flat))
		for i, n := range flat {
			all[i] = n.Task
		}

		if tab == treeTab {
			rows := formatter.RowsFromTree(roots, all)
			if query != "" {
				rows = filterRows(rows, query)
			}
			return rowsLoadedMsg{rows: rows, all: all}
		}

		tasks := app.Tasks.ListView(ctx, tab, query, now)
		rows := make([]formatter.TaskRow, len(tasks))
		for i, t := range tasks {
			rows[i] = formatter.TaskRow{
				Task:   t,
				IsLast: true,
				Due:    domain.EffectiveDueDate(t, all),
			}
		}
		return rowsLoadedMsg{rows: rows, all: all}
	}
}

// filterRows keeps matching rows in tree mode, flattening depth so the
// result stays readable as a list.
func filterRows(rows []formatter.TaskRow, query string) []formatter.TaskRow {
	var out []formatter.TaskRow
	for _, r := range rows {
		if domain.MatchesSearch(r.Task, query) {
			r.Depth = 0
			r.IsLast = true
			out = append(out, r)
		}
	}
	return out
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rowsLoadedMsg:
		m.rows = msg.rows
		m.all = msg.all
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m tuiModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
		return m, m.loadRows()
	case tea.KeyEnter:
		m.searching = false
		return m, m.loadRows()
	case tea.KeyBackspace:
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
		return m, m.loadRows()
	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
		return m, m.loadRows()
	}
	return m, nil
}

func (m tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % len(tuiTabs)
		m.cursor = 0
		return m, m.loadRows()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.query = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadRows()

	case key.Matches(msg, m.keys.Toggle):
		if task, ok := m.selected(); ok {
			app, id, load := m.app, task.ID, m.loadRows()
			return m, func() tea.Msg {
				_, _ = app.Tasks.Toggle(context.Background(), id)
				return load()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			app, id, load := m.app, task.ID, m.loadRows()
			return m, func() tea.Msg {
				_ = app.Tasks.Delete(context.Background(), id)
				return load()
			}
		}
		return m, nil
	}

	return m, nil
}

func (m tuiModel) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return domain.Task{}, false
	}
	return m.rows[m.cursor].Task, true
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs() + "\n\n")

	if len(m.rows) == 0 {
		b.WriteString(formatter.Dim("No tasks.") + "\n")
	} else {
		rendered := formatter.RenderTaskTree(m.rows, time.Now())
		for i, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
			if i == m.cursor {
				b.WriteString(formatter.StyleHeader.Render("▸ ") + line + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	b.WriteString("\n" + m.renderFooter())
	return b.String()
}

func (m tuiModel) renderTabs() string {
	labels := make([]string, len(tuiTabs))
	for i, tab := range tuiTabs {
		label := string(tab)
		if i == m.tab {
			labels[i] = formatter.StyleHeader.Render(label)
		} else {
			labels[i] = formatter.Dim(label)
		}
	}
	return strings.Join(labels, formatter.Dim(" · "))
}

func (m tuiModel) renderFooter() string {
	if m.searching {
		return formatter.StyleHeader.Render("/") + m.query + formatter.Dim("▏  enter apply · esc clear")
	}

	bindings := []key.Binding{
		m.keys.Toggle, m.keys.Delete, m.keys.NextTab, m.keys.Search, m.keys.Quit,
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = fmt.Sprintf("%s %s", formatter.Bold(b.Help().Key), formatter.Dim(b.Help().Desc))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
