package widgets

import (
	"math/rand/v2"
	"slices"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/store"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Catalog is the built-in set the daily quote is drawn from.
var Catalog = []Quote{
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Focus on being productive instead of busy.", "Tim Ferriss"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
	{"Your limitation, it's only your imagination.", "Unknown"},
	{"Small daily improvements over time lead to stunning results.", "Robin Sharma"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"Success is not final, failure is not fatal: it is the courage to continue that counts.", "Winston Churchill"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"The future depends on what you do today.", "Mahatma Gandhi"},
	{"You are never too old to set another goal or to dream a new dream.", "C.S. Lewis"},
}

type dailyQuote struct {
	Date  string `json:"date"`
	Quote Quote  `json:"quote"`
}

// Quotes tracks today's quote and the user's favorites.
type Quotes struct {
	store Store
	clock clock.Clock
	// pick returns a random index in [0, n).
	pick func(n int) int

	current   Quote
	favorites []Quote
}

func NewQuotes(s Store, c clock.Clock) *Quotes {
	return &Quotes{store: s, clock: c, pick: rand.IntN}
}

// Load reads favorites and today's quote, choosing and saving a new quote
// when the stored one is from another day.
func (q *Quotes) Load() error {
	var favs []Quote
	if _, err := loadJSON(q.store, store.KeyFavoriteQuotes, &favs); err != nil {
		return err
	}
	q.favorites = favs

	var d dailyQuote
	ok, err := loadJSON(q.store, store.KeyDailyQuote, &d)
	if err != nil {
		return err
	}
	if ok && d.Date == clock.Day(q.clock) {
		q.current = d.Quote
		return nil
	}
	_, err = q.Refresh()
	return err
}

// Daily returns the current quote.
func (q *Quotes) Daily() Quote { return q.current }

// Refresh draws a new random quote and stores it as today's.
func (q *Quotes) Refresh() (Quote, error) {
	q.current = Catalog[q.pick(len(Catalog))]
	err := saveJSON(q.store, store.KeyDailyQuote, dailyQuote{Date: clock.Day(q.clock), Quote: q.current})
	return q.current, err
}

func (q *Quotes) IsFavorite(quote Quote) bool {
	return slices.ContainsFunc(q.favorites, func(f Quote) bool { return f.Text == quote.Text })
}

// ToggleFavorite adds quote to favorites, or removes it if present. It
// reports whether the quote is a favorite afterwards.
func (q *Quotes) ToggleFavorite(quote Quote) (bool, error) {
	added := !q.IsFavorite(quote)
	if added {
		q.favorites = append(q.favorites, quote)
	} else {
		q.favorites = slices.DeleteFunc(q.favorites, func(f Quote) bool { return f.Text == quote.Text })
	}
	return added, saveJSON(q.store, store.KeyFavoriteQuotes, q.favorites)
}

func (q *Quotes) Favorites() []Quote {
	return slices.Clone(q.favorites)
}
