package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindful/internal/store"
	"github.com/sadopc/mindful/internal/widgets"
)

// customBackground is the select value that reveals the URL input.
const customBackground = "custom"

type settingsForm int

const (
	formNone settingsForm = iota
	formBackground
	formClear
)

// localData is the part of the store the settings view manages directly.
type localData interface {
	All() ([]store.Entry, error)
	Clear() error
}

type settingsModel struct {
	appearance *widgets.Appearance
	data       localData
	exportDir  string
	width      int
	height     int

	stored map[string]int // key -> value size

	formActive bool
	formKind   settingsForm
	form       *huh.Form

	// Form values as pointers (survive value copies)
	bgChoice  *string
	bgURL     *string
	confirmed *bool
}

func newSettingsModel(a *widgets.Appearance, data localData, exportDir string) settingsModel {
	choice, url, ok := "", "", false
	return settingsModel{
		appearance: a,
		data:       data,
		exportDir:  exportDir,
		bgChoice:   &choice,
		bgURL:      &url,
		confirmed:  &ok,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	stored map[string]int
	err    error
}

func (s settingsModel) refresh() tea.Cmd {
	data := s.data
	return func() tea.Msg {
		entries, err := data.All()
		if err != nil {
			return settingsDataMsg{err: err}
		}
		stored := make(map[string]int, len(entries))
		for _, e := range entries {
			stored[e.Key] = len(e.Value)
		}
		return settingsDataMsg{stored: stored}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(settingsDataMsg); ok {
		if msg.err != nil {
			return s, statusCmd(fmt.Sprintf("Error reading stored data: %v", msg.err), true)
		}
		s.stored = msg.stored
		return s, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Theme):
		return s, s.toggleTheme()
	case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.Edit):
		return s.showBackgroundForm()
	case key.Matches(keyMsg, keys.Clear):
		return s.showClearForm()
	}
	return s, nil
}

func (s settingsModel) toggleTheme() tea.Cmd {
	theme, err := s.appearance.ToggleTheme()
	applyTheme(theme)
	if err != nil {
		return statusCmd(err.Error(), true)
	}
	return tea.Batch(func() tea.Msg { return themeChangedMsg{} }, s.refresh())
}

func (s settingsModel) showBackgroundForm() (settingsModel, tea.Cmd) {
	*s.bgChoice = customBackground
	*s.bgURL = ""
	current := s.appearance.Background()

	var opts []huh.Option[string]
	for _, b := range widgets.Backgrounds {
		opts = append(opts, huh.NewOption(b.Name, b.URL))
		if b.URL == current {
			*s.bgChoice = b.URL
		}
	}
	opts = append(opts, huh.NewOption("Custom URL...", customBackground))
	if *s.bgChoice == customBackground {
		*s.bgURL = current
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Background").Options(opts...).Value(s.bgChoice),
		),
		huh.NewGroup(
			huh.NewInput().Title("Image URL").Placeholder("https://").Value(s.bgURL),
		).WithHideFunc(func() bool { return *s.bgChoice != customBackground }),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	s.formKind = formBackground
	return s, s.form.Init()
}

func (s settingsModel) showClearForm() (settingsModel, tea.Cmd) {
	*s.confirmed = false
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all data?").
				Description("Intentions, sessions, links, favorites and appearance are removed.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(s.confirmed),
		),
	).WithShowHelp(true)

	s.formActive = true
	s.formKind = formClear
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		switch s.formKind {
		case formBackground:
			return s, tea.Batch(s.saveBackground(), s.refresh())
		case formClear:
			if *s.confirmed {
				return s, s.clearData()
			}
		}
		return s, nil
	}

	return s, cmd
}

func (s settingsModel) saveBackground() tea.Cmd {
	url := *s.bgChoice
	if url == customBackground {
		url = *s.bgURL
	}
	err := s.appearance.SetBackground(url)
	switch {
	case errors.Is(err, widgets.ErrEmptyURL):
		return statusCmd("Background URL is empty", true)
	case err != nil:
		return statusCmd(err.Error(), true)
	}
	return statusCmd("Background set to "+s.appearance.BackgroundName(), false)
}

func (s settingsModel) clearData() tea.Cmd {
	data := s.data
	return func() tea.Msg {
		return dataClearedMsg{err: data.Clear()}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render(label), highlightStyle.Render(value))
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		row("Theme", string(s.appearance.Theme())),
		row("Background", s.appearance.BackgroundName()),
		"  " + mutedStyle.Render(s.appearance.Background()),
		row("Export folder", s.exportDir),
		"",
		titleStyle.Render("Stored data"),
	}
	for _, k := range store.Keys {
		size, ok := s.stored[k]
		value := mutedStyle.Render("not set")
		if ok {
			value = highlightStyle.Render(plural(size, "byte"))
		}
		rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(16).Render(k), value))
	}
	rows = append(rows,
		"",
		mutedStyle.Render("  t: toggle theme  enter: background  e: export  X: clear all data"),
	)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
