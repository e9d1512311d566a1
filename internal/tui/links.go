package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindful/internal/widgets"
)

type linksModel struct {
	links  *widgets.Links
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string
	formURL    *string
}

func newLinksModel(l *widgets.Links) linksModel {
	title, url := "", ""
	return linksModel{links: l, formTitle: &title, formURL: &url}
}

func (l *linksModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

func (l linksModel) update(msg tea.Msg) (linksModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	list := l.links.List()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if l.cursor < len(list)-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return l.showForm()
	case key.Matches(keyMsg, keys.Delete):
		if l.cursor < len(list) {
			gone := list[l.cursor]
			if err := l.links.Remove(gone.ID); err != nil {
				return l, statusCmd(fmt.Sprintf("Error removing link: %v", err), true)
			}
			if l.cursor >= len(list)-1 && l.cursor > 0 {
				l.cursor--
			}
			return l, statusCmd("Removed "+gone.Title, false)
		}
	}
	return l, nil
}

func (l linksModel) showForm() (linksModel, tea.Cmd) {
	*l.formTitle = ""
	*l.formURL = ""
	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Placeholder("Notion").Value(l.formTitle),
			huh.NewInput().Title("URL").Placeholder("https://").Value(l.formURL),
		).Title("New Link"),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l linksModel) updateForm(msg tea.Msg) (linksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			l.formActive = false
			l.form = nil
			return l, nil
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		l.form = nil
		link, err := l.links.Add(*l.formTitle, *l.formURL)
		switch {
		case errors.Is(err, widgets.ErrInvalidLink):
			return l, statusCmd("A link needs both a title and a URL", true)
		case err != nil:
			return l, statusCmd(fmt.Sprintf("Error saving link: %v", err), true)
		}
		return l, statusCmd("Added "+link.Title, false)
	}

	return l, cmd
}

func (l linksModel) view() string {
	w := l.width - 4

	if l.formActive && l.form != nil {
		return panelStyle.Width(w).Render(l.form.View())
	}

	list := l.links.List()
	var rows []string
	rows = append(rows, titleStyle.Render("Quick Links"), "")

	if len(list) == 0 {
		rows = append(rows, mutedStyle.Render("No links. Press n to add one."))
	}
	for i, link := range list {
		cursor := "  "
		style := normalItemStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := lipgloss.NewStyle().Width(20).Render(style.Render(link.Title))
		rows = append(rows, cursor+name+" "+mutedStyle.Render(link.URL))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: remove"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
