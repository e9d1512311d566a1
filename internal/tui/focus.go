package tui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/mindful/internal/focus"
)

type focusModel struct {
	timer  *focus.Timer
	width  int
	height int
}

func newFocusModel(t *focus.Timer) focusModel {
	return focusModel{timer: t}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		return f.tick(msg.handle)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PlayPause):
			if h, ok := f.timer.PlayPause(); ok {
				return f, countdownTick(h)
			}
			return f, nil
		case key.Matches(msg, keys.Reset):
			f.timer.Reset()
			return f, nil
		case key.Matches(msg, keys.Left):
			return f.cyclePreset(-1)
		case key.Matches(msg, keys.Right):
			return f.cyclePreset(1)
		}
	}
	return f, nil
}

func (f focusModel) tick(h focus.Handle) (focusModel, tea.Cmd) {
	more, done, err := f.timer.Tick(h)

	var cmds []tea.Cmd
	if more {
		cmds = append(cmds, countdownTick(h))
	}
	if done != nil {
		log.Printf("focus: %s period complete, sessions today %d", done.Mode, done.Sessions)
		cmds = append(cmds, statusCmd(completionText(done)+" \a", false))
	}
	if err != nil {
		cmds = append(cmds, statusCmd(fmt.Sprintf("Error saving sessions: %v", err), true))
	}
	return f, tea.Batch(cmds...)
}

func (f focusModel) cyclePreset(delta int) (focusModel, tea.Cmd) {
	i := 0
	for j, p := range focus.Presets {
		if p.ID == f.timer.Preset().ID {
			i = j
			break
		}
	}
	n := len(focus.Presets)
	next := focus.Presets[((i+delta)%n+n)%n]
	if err := f.timer.SelectPreset(next.ID); err != nil {
		return f, statusCmd(err.Error(), true)
	}
	return f, nil
}

func (f focusModel) running() bool { return f.timer.Running() }

func (f focusModel) view() string {
	w := f.width - 4

	title := titleStyle.Render("Focus Timer")

	var tabs []string
	for _, p := range focus.Presets {
		label := fmt.Sprintf("%s %d/%d", p.Label, p.WorkMinutes, p.BreakMinutes)
		if p.ID == f.timer.Preset().ID {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	presetRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	modeLabel := accentStyle.Bold(true).Render("Focus Time")
	style := timerStyle
	if f.timer.Mode() == focus.ModeBreak {
		modeLabel = successStyle.Bold(true).Render("Break Time")
		style = timerBreakStyle
	} else if f.timer.Running() {
		style = timerRunningStyle
	}
	timeDisplay := style.Width(max(w-6, 10)).Render(formatClock(f.timer.Remaining()))

	barWidth := min(max(w-10, 10), 50)
	bar := mutedStyle.Render(progressBar(f.timer.Progress(), barWidth))

	sessions := mutedStyle.Render(plural(f.timer.Sessions(), "focus session") + " today")

	state := mutedStyle.Render("Paused")
	if f.timer.Running() {
		state = successStyle.Render("Running")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		presetRow,
		"",
		modeLabel,
		timeDisplay,
		state,
		"",
		bar,
		"",
		sessions,
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  ←/→: preset")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}
