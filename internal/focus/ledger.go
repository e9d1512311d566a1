package focus

import (
	"encoding/json"
	"fmt"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/store"
)

// Store is the persistent string store the ledger and timer need.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type ledgerEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Ledger counts work sessions completed today. Entries from earlier days are
// discarded, never archived.
type Ledger struct {
	store Store
	clock clock.Clock

	date  string
	count int
}

func NewLedger(s Store, c clock.Clock) *Ledger {
	return &Ledger{store: s, clock: c}
}

// Load adopts the persisted count when it belongs to today. Anything else,
// including a missing entry, becomes today's zero and is written back.
func (l *Ledger) Load() error {
	today := clock.Day(l.clock)

	raw, ok, err := l.store.Get(store.KeyFocusSessions)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	if ok {
		var e ledgerEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return fmt.Errorf("decode sessions: %w", err)
		}
		if e.Date == today {
			l.date = today
			l.count = max(e.Count, 0)
			return nil
		}
	}

	l.date = today
	l.count = 0
	return l.persist()
}

// Increment records one completed work session. "Today" is recomputed here
// so a dashboard left open across midnight starts the new day at 1.
func (l *Ledger) Increment() error {
	today := clock.Day(l.clock)
	if l.date != today {
		l.date = today
		l.count = 0
	}
	l.count++
	return l.persist()
}

// Count is today's total. A count held from a previous day reads as 0.
func (l *Ledger) Count() int {
	if l.date != clock.Day(l.clock) {
		return 0
	}
	return l.count
}

func (l *Ledger) persist() error {
	data, err := json.Marshal(ledgerEntry{Date: l.date, Count: l.count})
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := l.store.Set(store.KeyFocusSessions, string(data)); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}
