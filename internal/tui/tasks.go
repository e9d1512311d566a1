package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindful/internal/tasks"
)

type tasksModel struct {
	mirror  *tasks.Mirror
	notices *noticeBuffer
	width   int
	height  int

	cursor  int
	loading bool

	formActive bool
	form       *huh.Form
	formText   *string // survives value copies

	chart barchart.Model
}

func newTasksModel(m *tasks.Mirror, n *noticeBuffer) tasksModel {
	text := ""
	return tasksModel{
		mirror:   m,
		notices:  n,
		formText: &text,
		chart:    barchart.New(30, 8),
	}
}

func (t *tasksModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t tasksModel) load() tea.Cmd {
	m, n := t.mirror, t.notices
	return func() tea.Msg {
		m.Load(context.Background())
		return n.take()
	}
}

func (t tasksModel) add(text string) tea.Cmd {
	m, n := t.mirror, t.notices
	return func() tea.Msg {
		if _, err := m.Add(context.Background(), text); errors.Is(err, tasks.ErrEmptyText) {
			return tasksSyncedMsg{}
		}
		return n.take()
	}
}

func (t tasksModel) remove(id string) tea.Cmd {
	m, n := t.mirror, t.notices
	return func() tea.Msg {
		m.Delete(context.Background(), id)
		return n.take()
	}
}

func (t tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Sync results land even while the add form is open.
	if _, ok := msg.(tasksSyncedMsg); ok {
		t.loading = false
		t.clampCursor()
		t.buildChart()
		return t, nil
	}

	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		list := t.mirror.Tasks()
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(list)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.New):
			return t.showForm()
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter), key.Matches(msg, keys.PlayPause):
			if t.cursor < len(list) {
				t.mirror.Toggle(list[t.cursor].ID)
				t.buildChart()
			}
		case key.Matches(msg, keys.Delete):
			if t.cursor < len(list) {
				return t, t.remove(list[t.cursor].ID)
			}
		case key.Matches(msg, keys.Reset):
			t.loading = true
			return t, t.load()
		}
	}
	return t, nil
}

func (t tasksModel) showForm() (tasksModel, tea.Cmd) {
	*t.formText = ""
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Task").
				Placeholder("Add a new task...").
				Value(t.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		t.form = nil
		if strings.TrimSpace(*t.formText) == "" {
			return t, nil
		}
		return t, t.add(*t.formText)
	}

	return t, cmd
}

func (t *tasksModel) clampCursor() {
	n := len(t.mirror.Tasks())
	if t.cursor >= n {
		t.cursor = max(0, n-1)
	}
}

func (t *tasksModel) buildChart() {
	active, done := t.mirror.Counts()

	chartWidth := min(max(t.width/3, 20), 40)
	t.chart = barchart.New(chartWidth, 8)
	t.chart.PushAll([]barchart.BarData{
		{
			Label:  "Active",
			Values: []barchart.BarValue{{Name: "Active", Value: float64(active), Style: lipgloss.NewStyle().Foreground(colorAccent)}},
		},
		{
			Label:  "Done",
			Values: []barchart.BarValue{{Name: "Done", Value: float64(done), Style: lipgloss.NewStyle().Foreground(colorSuccess)}},
		},
	})
	t.chart.Draw()
}

func (t tasksModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		return panelStyle.Width(w).Render(t.form.View())
	}

	list := t.mirror.Tasks()
	active, done := t.mirror.Counts()

	title := titleStyle.Render("Tasks")
	summary := mutedStyle.Render(fmt.Sprintf("  %d active, %d completed", active, done))
	if t.loading {
		summary = mutedStyle.Render("  loading...")
	}

	var rows []string
	rows = append(rows, title+summary, "")

	if len(list) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks yet. Press n to add one."))
	}
	for i, task := range list {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ] "
		text := style.Render(task.Text)
		if task.Completed {
			check = "[x] "
			text = doneItemStyle.Render(task.Text)
		}
		rows = append(rows, style.Render(cursor+check)+text)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  x/enter: done  d: delete  r: reload"))

	left := strings.Join(rows, "\n")
	if len(list) == 0 {
		return panelStyle.Width(w).Render(left)
	}

	right := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Progress"), "", t.chart.View())
	gap := lipgloss.NewStyle().Width(4).Render("")
	return panelStyle.Width(w).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right))
}
