package focus

import (
	"errors"
	"fmt"
)

// PresetID names one of the fixed timer presets.
type PresetID string

const (
	Pomodoro PresetID = "pomodoro"
	Deep     PresetID = "deep"
	Short    PresetID = "short"
)

// Mode is the phase of a focus cycle.
type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named pair of work and break durations.
type Preset struct {
	ID           PresetID
	WorkMinutes  int
	BreakMinutes int
	Label        string
}

// Presets is the fixed catalog, in display order.
var Presets = []Preset{
	{ID: Pomodoro, WorkMinutes: 25, BreakMinutes: 5, Label: "Pomodoro"},
	{ID: Deep, WorkMinutes: 45, BreakMinutes: 15, Label: "Deep Work"},
	{ID: Short, WorkMinutes: 15, BreakMinutes: 3, Label: "Quick Focus"},
}

// LookupPreset finds a preset by id.
func LookupPreset(id PresetID) (Preset, error) {
	for _, p := range Presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
}

// Seconds returns the length of mode m under this preset.
func (p Preset) Seconds(m Mode) int {
	if m == ModeBreak {
		return p.BreakMinutes * 60
	}
	return p.WorkMinutes * 60
}
