package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/mindful/internal/focus"
	"github.com/sadopc/mindful/internal/tasks"
)

// viewState represents the currently active view.
type viewState int

const (
	viewFocus viewState = iota
	viewTasks
	viewToday
	viewLinks
	viewSettings
)

var viewNames = []string{"Focus", "Tasks", "Today", "Links", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// countdownTickMsg is one second of the focus countdown. It carries the
// handle it was scheduled under; stale handles are dropped by the timer.
type countdownTickMsg struct {
	handle focus.Handle
}

// tasksSyncedMsg follows every remote task call.
type tasksSyncedMsg struct {
	notice  string
	isError bool
}

type exportDoneMsg struct {
	paths []string
}

type dataClearedMsg struct {
	err error
}

type themeChangedMsg struct{}

// --- Commands ---

func countdownTick(h focus.Handle) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{handle: h}
	})
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

// noticeBuffer queues mirror notices raised inside commands so each command
// can hand one back to the event loop. Every mirror call raises at most one.
type noticeBuffer struct {
	mu      sync.Mutex
	pending []tasksSyncedMsg
}

func (n *noticeBuffer) Notify(level tasks.Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, tasksSyncedMsg{notice: msg, isError: level == tasks.LevelError})
}

func (n *noticeBuffer) take() tasksSyncedMsg {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.pending) == 0 {
		return tasksSyncedMsg{}
	}
	msg := n.pending[0]
	n.pending = n.pending[1:]
	return msg
}

// --- Helpers ---

// formatClock renders seconds as MM:SS.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func progressBar(p float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := int(p * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func completionText(c *focus.Completion) string {
	if c.Mode == focus.ModeWork {
		return fmt.Sprintf("Focus session complete! You've completed %d sessions today.", c.Sessions)
	}
	return "Break complete! Time to focus again!"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
