package widgets

import (
	"maps"
	"time"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/store"
)

// Intentions maps a calendar date (2006-01-02) to the intention written for
// that day.
type Intentions struct {
	store Store
	clock clock.Clock
	byDay map[string]string
}

func NewIntentions(s Store, c clock.Clock) *Intentions {
	return &Intentions{store: s, clock: c, byDay: map[string]string{}}
}

func (in *Intentions) Load() error {
	m := map[string]string{}
	if _, err := loadJSON(in.store, store.KeyDailyIntentions, &m); err != nil {
		return err
	}
	if m == nil {
		m = map[string]string{}
	}
	in.byDay = m
	return nil
}

func (in *Intentions) Get(day time.Time) string {
	return in.byDay[clock.Date(day)]
}

func (in *Intentions) Save(day time.Time, text string) error {
	in.byDay[clock.Date(day)] = text
	return saveJSON(in.store, store.KeyDailyIntentions, in.byDay)
}

// CanAdvance reports whether the day after day is still not in the future.
func (in *Intentions) CanAdvance(day time.Time) bool {
	return clock.Date(day) < clock.Date(in.clock.Now())
}

// IsToday reports whether day is the current calendar day.
func (in *Intentions) IsToday(day time.Time) bool {
	return clock.Date(day) == clock.Date(in.clock.Now())
}

// All returns a copy of every saved intention keyed by date.
func (in *Intentions) All() map[string]string {
	return maps.Clone(in.byDay)
}
