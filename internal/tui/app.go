package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/export"
	"github.com/sadopc/mindful/internal/focus"
	"github.com/sadopc/mindful/internal/store"
	"github.com/sadopc/mindful/internal/tasks"
	"github.com/sadopc/mindful/internal/widgets"
)

// Deps is what the dashboard needs from the outside world.
type Deps struct {
	Store     *store.Store
	Clock     clock.Clock
	Remote    tasks.Remote
	ExportDir string
}

// App is the root Bubble Tea model.
type App struct {
	store     *store.Store
	clock     clock.Clock
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	ledger     *focus.Ledger
	intentions *widgets.Intentions
	quotes     *widgets.Quotes
	links      *widgets.Links
	appearance *widgets.Appearance

	focus    focusModel
	tasks    tasksModel
	today    todayModel
	linkList linksModel
	settings settingsModel

	help    help.Model
	status  string
	isError bool
}

func NewApp(d Deps) App {
	if d.Clock == nil {
		d.Clock = clock.System{}
	}
	h := help.New()
	h.ShowAll = false

	ledger := focus.NewLedger(d.Store, d.Clock)
	notices := &noticeBuffer{}
	mirror := tasks.NewMirror(d.Remote, notices)

	a := App{
		store:      d.Store,
		clock:      d.Clock,
		exportDir:  d.ExportDir,
		activeView: viewFocus,
		ledger:     ledger,
		intentions: widgets.NewIntentions(d.Store, d.Clock),
		quotes:     widgets.NewQuotes(d.Store, d.Clock),
		links:      widgets.NewLinks(d.Store, d.Clock),
		appearance: widgets.NewAppearance(d.Store),
		help:       h,
	}
	a.focus = newFocusModel(focus.NewTimer(ledger))
	a.tasks = newTasksModel(mirror, notices)
	a.tasks.loading = true
	a.today = newTodayModel(a.intentions, a.quotes, ledger, d.Clock)
	a.linkList = newLinksModel(a.links)
	a.settings = newSettingsModel(a.appearance, d.Store, d.ExportDir)

	if err := a.loadLocal(); err != nil {
		a.status = err.Error()
		a.isError = true
	}
	return a
}

// loadLocal reads every persisted widget. Each one is attempted; the first
// error is returned and the failing widget keeps its defaults.
func (a App) loadLocal() error {
	var first error
	for _, load := range []func() error{
		a.ledger.Load,
		a.intentions.Load,
		a.quotes.Load,
		a.links.Load,
		a.appearance.Load,
	} {
		if err := load(); err != nil {
			log.Printf("load: %v", err)
			if first == nil {
				first = err
			}
		}
	}
	applyTheme(a.appearance.Theme())
	return first
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.tasks.load(), a.settings.refresh())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.focus.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.today.setSize(a.width, contentHeight)
		a.linkList.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.tasks.buildChart()
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewFocus
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewToday
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewLinks
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			if a.activeView == viewSettings {
				return a, a.settings.refresh()
			}
			return a, nil
		}

	case countdownTickMsg:
		// Always route ticks to the focus timer, whatever view is showing.
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, cmd

	case tasksSyncedMsg:
		if msg.notice != "" {
			a.status = msg.notice
			a.isError = msg.isError
		}
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.isError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + strings.Join(msg.paths, ", ")
		a.isError = false
		return a, nil

	case dataClearedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("Clear error: %v", msg.err)
			a.isError = true
			return a, nil
		}
		a.status = "All data cleared"
		a.isError = false
		if err := a.loadLocal(); err != nil {
			a.status = err.Error()
			a.isError = true
		}
		a.focus.timer.Reset()
		a.today.day = a.clock.Now()
		a.linkList.cursor = 0
		a.tasks.buildChart()
		return a, a.settings.refresh()

	case themeChangedMsg:
		a.tasks.buildChart()
		a.status = "Theme: " + string(a.appearance.Theme())
		a.isError = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewLinks:
		a.linkList, cmd = a.linkList.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewToday:
		return a.today.formActive
	case viewLinks:
		return a.linkList.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewFocus:
		content = a.focus.view()
	case viewTasks:
		content = a.tasks.view()
	case viewToday:
		content = a.today.view()
	case viewLinks:
		content = a.linkList.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("mindful")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Countdown indicator while the focus timer runs.
	timerInfo := ""
	if a.focus.running() {
		remaining := formatClock(a.focus.timer.Remaining())
		timerInfo = successStyle.Render(" ● " + remaining)
		if a.focus.timer.Mode() == focus.ModeBreak {
			timerInfo = warningStyle.Render(" ☕ " + remaining)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"JSON backup", "Intentions CSV"}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export"), "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  into "+a.exportDir))
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	kv, dir, now := a.store, a.exportDir, a.clock.Now()
	byDay := a.intentions.All()
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		if format == 0 {
			path, err = export.WriteBackup(kv, dir, now)
		} else {
			path, err = export.WriteIntentions(byDay, dir, now)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{paths: []string{path}}
	}
}
