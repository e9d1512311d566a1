package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/focus"
	"github.com/sadopc/mindful/internal/widgets"
)

type todayModel struct {
	intentions *widgets.Intentions
	quotes     *widgets.Quotes
	ledger     *focus.Ledger
	clock      clock.Clock
	width      int
	height     int

	day time.Time

	formActive bool
	form       *huh.Form
	formText   *string
}

func newTodayModel(in *widgets.Intentions, q *widgets.Quotes, l *focus.Ledger, c clock.Clock) todayModel {
	text := ""
	return todayModel{
		intentions: in,
		quotes:     q,
		ledger:     l,
		clock:      c,
		day:        c.Now(),
		formText:   &text,
	}
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		t.day = t.day.AddDate(0, 0, -1)
	case key.Matches(keyMsg, keys.Right):
		if t.intentions.CanAdvance(t.day) {
			t.day = t.day.AddDate(0, 0, 1)
		}
	case key.Matches(keyMsg, keys.Today):
		t.day = t.clock.Now()
	case key.Matches(keyMsg, keys.Edit), key.Matches(keyMsg, keys.Enter):
		return t.showForm()
	case key.Matches(keyMsg, keys.Reset):
		if _, err := t.quotes.Refresh(); err != nil {
			return t, statusCmd(fmt.Sprintf("Error saving quote: %v", err), true)
		}
	case key.Matches(keyMsg, keys.Favorite):
		added, err := t.quotes.ToggleFavorite(t.quotes.Daily())
		if err != nil {
			return t, statusCmd(fmt.Sprintf("Error saving favorites: %v", err), true)
		}
		if added {
			return t, statusCmd("Added to favorites", false)
		}
		return t, statusCmd("Removed from favorites", false)
	}
	return t, nil
}

func (t todayModel) showForm() (todayModel, tea.Cmd) {
	*t.formText = t.intentions.Get(t.day)
	t.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(t.dayLabel()).
				Placeholder("What's your main focus for today?").
				CharLimit(500).
				Value(t.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	t.formActive = true
	return t, t.form.Init()
}

func (t todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
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
		if err := t.intentions.Save(t.day, *t.formText); err != nil {
			return t, statusCmd(fmt.Sprintf("Error saving intention: %v", err), true)
		}
		return t, statusCmd("Intention saved", false)
	}

	return t, cmd
}

func (t todayModel) dayLabel() string {
	if t.intentions.IsToday(t.day) {
		return "Today's Intention"
	}
	return t.day.Format("Monday, January 2")
}

func (t todayModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		return panelStyle.Width(w).Render(t.form.View())
	}

	halfW := (w - 2) / 2

	// Intention
	nav := mutedStyle.Render("<  ")
	if t.intentions.CanAdvance(t.day) {
		nav += mutedStyle.Render("  >")
	}
	intention := t.intentions.Get(t.day)
	body := normalItemStyle.Render(intention)
	if intention == "" {
		body = mutedStyle.Render("No intention set. Press i to write one.")
	}
	left := panelStyle.Width(halfW).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(t.dayLabel())+"  "+nav,
		"",
		lipgloss.NewStyle().Width(max(halfW-4, 10)).Render(body),
		"",
		mutedStyle.Render(plural(t.ledger.Count(), "focus session")+" today"),
	))

	// Quote
	q := t.quotes.Daily()
	star := "  "
	if t.quotes.IsFavorite(q) {
		star = warningStyle.Render("* ")
	}
	right := panelStyle.Width(halfW).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Daily Quote"),
		"",
		quoteStyle.Width(max(halfW-4, 10)).Render("\""+q.Text+"\""),
		star+subtitleStyle.Render("- "+q.Author),
		"",
		mutedStyle.Render(plural(len(t.quotes.Favorites()), "favorite")),
	))

	hint := mutedStyle.Render("  i: edit intention  ←/→: day  .: today  r: new quote  f: favorite")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
		hint,
	)
}
