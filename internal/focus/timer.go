package focus

// Completion describes a countdown that ran out.
type Completion struct {
	Mode     Mode // the mode that just finished
	Sessions int  // sessions completed today, after this completion
}

// Timer is the focus timer state machine: a preset, a mode, and the
// countdown for the current mode. It is not safe for concurrent use; the
// dashboard drives it from its event loop.
type Timer struct {
	preset    Preset
	mode      Mode
	countdown *Countdown
	ledger    *Ledger

	done *Completion
	err  error
}

// NewTimer returns a timer in its initial state: Pomodoro, work, full work
// duration, stopped.
func NewTimer(ledger *Ledger) *Timer {
	t := &Timer{
		preset: Presets[0],
		mode:   ModeWork,
		ledger: ledger,
	}
	t.countdown = NewCountdown(t.complete)
	t.countdown.Arm(t.preset.Seconds(ModeWork))
	return t
}

// SelectPreset switches preset and starts over in work mode, stopped.
func (t *Timer) SelectPreset(id PresetID) error {
	p, err := LookupPreset(id)
	if err != nil {
		return err
	}
	t.preset = p
	t.mode = ModeWork
	t.countdown.Arm(p.Seconds(ModeWork))
	return nil
}

// PlayPause toggles running. When it starts the countdown it returns the
// handle ticks must carry and true.
func (t *Timer) PlayPause() (Handle, bool) {
	if t.countdown.Running() {
		t.countdown.Stop()
		return 0, false
	}
	return t.countdown.Start()
}

// Reset returns to the start of a work period under the current preset.
func (t *Timer) Reset() {
	t.mode = ModeWork
	t.countdown.Arm(t.preset.Seconds(ModeWork))
}

// Tick delivers one second for handle h. more reports whether another tick
// should follow. done is set when this tick finished a period; err carries a
// failure to persist the session count, in which case the in-memory count
// and mode transition still stand.
func (t *Timer) Tick(h Handle) (more bool, done *Completion, err error) {
	more = t.countdown.Tick(h)
	done, err = t.done, t.err
	t.done, t.err = nil, nil
	return more, done, err
}

func (t *Timer) complete() {
	finished := t.mode
	if finished == ModeWork {
		t.err = t.ledger.Increment()
		t.mode = ModeBreak
	} else {
		t.mode = ModeWork
	}
	t.countdown.Arm(t.preset.Seconds(t.mode))
	t.done = &Completion{Mode: finished, Sessions: t.ledger.Count()}
}

func (t *Timer) Preset() Preset { return t.preset }
func (t *Timer) Mode() Mode     { return t.mode }
func (t *Timer) Remaining() int { return t.countdown.Remaining() }
func (t *Timer) Running() bool  { return t.countdown.Running() }
func (t *Timer) Sessions() int  { return t.ledger.Count() }

// Progress is the elapsed fraction of the current period, in [0, 1].
func (t *Timer) Progress() float64 {
	total := t.preset.Seconds(t.mode)
	p := 1 - float64(t.countdown.Remaining())/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
