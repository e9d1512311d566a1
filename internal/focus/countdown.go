package focus

// Handle identifies one ticking registration of a Countdown. Only ticks
// carrying the live handle are honoured, so cancelling a registration is a
// matter of minting a new handle.
type Handle uint64

// Countdown decrements a remaining-seconds value once per tick while
// running and fires its completion callback exactly once when it reaches
// zero. It does not own a goroutine: the caller delivers ticks, one per
// second, each tagged with the handle returned by Start.
type Countdown struct {
	remaining  int
	running    bool
	handle     Handle
	onComplete func()
}

func NewCountdown(onComplete func()) *Countdown {
	return &Countdown{onComplete: onComplete}
}

// Arm stops the countdown and loads a new duration.
func (c *Countdown) Arm(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	c.running = false
	c.handle++
	c.remaining = seconds
}

// Start begins ticking. It reports false, and schedules nothing new, when
// the countdown is already running or has nothing left to count.
func (c *Countdown) Start() (Handle, bool) {
	if c.running || c.remaining == 0 {
		return c.handle, false
	}
	c.handle++
	c.running = true
	return c.handle, true
}

// Stop halts ticking and keeps the remaining time.
func (c *Countdown) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.handle++
}

// Tick advances one second on behalf of registration h. It returns true when
// the caller should deliver another tick for h.
func (c *Countdown) Tick(h Handle) bool {
	if !c.running || h != c.handle {
		return false
	}
	if c.remaining <= 1 {
		c.remaining = 0
		c.running = false
		c.handle++
		if c.onComplete != nil {
			c.onComplete()
		}
		return false
	}
	c.remaining--
	return true
}

func (c *Countdown) Remaining() int { return c.remaining }
func (c *Countdown) Running() bool  { return c.running }
