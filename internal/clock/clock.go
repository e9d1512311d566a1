package clock

import "time"

// Layouts for the two calendar-day keys the dashboard persists.
const (
	DayLayout  = "Mon Jan 02 2006" // focusSessions, dailyQuote
	DateLayout = "2006-01-02"      // dailyIntentions, export file names
)

// Clock is the single source of "now" for every component that compares
// calendar days.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in local time.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns T. Tests move it forward by assigning T.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }

// Day returns the day string used by the session ledger and daily quote.
func Day(c Clock) string {
	return c.Now().Format(DayLayout)
}

// Date returns the yyyy-mm-dd key for t.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}
