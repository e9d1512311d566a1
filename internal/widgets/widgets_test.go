package widgets

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testClock() *clock.Fixed {
	return &clock.Fixed{T: time.Date(2026, time.October, 18, 9, 30, 0, 0, time.Local)}
}

// ============================================================
// Intentions
// ============================================================

func TestIntentionsSaveAndReload(t *testing.T) {
	s := newTestStore(t)
	c := testClock()
	in := NewIntentions(s, c)
	if err := in.Load(); err != nil {
		t.Fatal(err)
	}
	if err := in.Save(c.Now(), "Ship the release"); err != nil {
		t.Fatal(err)
	}

	raw, _, _ := s.Get(store.KeyDailyIntentions)
	if raw != `{"2026-10-18":"Ship the release"}` {
		t.Fatalf("unexpected stored value %s", raw)
	}

	again := NewIntentions(s, c)
	if err := again.Load(); err != nil {
		t.Fatal(err)
	}
	if got := again.Get(c.Now()); got != "Ship the release" {
		t.Fatalf("expected saved intention, got %q", got)
	}
	if got := again.Get(c.Now().AddDate(0, 0, -1)); got != "" {
		t.Fatalf("expected nothing for yesterday, got %q", got)
	}
}

func TestIntentionsNavigationStopsAtToday(t *testing.T) {
	c := testClock()
	in := NewIntentions(newTestStore(t), c)
	if in.CanAdvance(c.Now()) {
		t.Fatal("should not advance past today")
	}
	if !in.CanAdvance(c.Now().AddDate(0, 0, -1)) {
		t.Fatal("yesterday should be able to advance")
	}
	if !in.IsToday(c.Now()) || in.IsToday(c.Now().AddDate(0, 0, -1)) {
		t.Fatal("IsToday mismatch")
	}
}

func TestIntentionsMalformed(t *testing.T) {
	s := newTestStore(t)
	s.Set(store.KeyDailyIntentions, "[oops")
	if err := NewIntentions(s, testClock()).Load(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestIntentionsNullValue(t *testing.T) {
	s := newTestStore(t)
	s.Set(store.KeyDailyIntentions, "null")
	c := testClock()
	in := NewIntentions(s, c)
	if err := in.Load(); err != nil {
		t.Fatal(err)
	}
	if err := in.Save(c.Now(), "Start fresh"); err != nil {
		t.Fatal(err)
	}
	if got := in.Get(c.Now()); got != "Start fresh" {
		t.Fatalf("expected saved intention, got %q", got)
	}
}

// ============================================================
// Quotes
// ============================================================

func TestQuotesCatalog(t *testing.T) {
	if len(Catalog) != 12 {
		t.Fatalf("expected 12 quotes, got %d", len(Catalog))
	}
}

func TestQuotesDailyPickedAndPersisted(t *testing.T) {
	s := newTestStore(t)
	c := testClock()
	q := NewQuotes(s, c)
	q.pick = func(int) int { return 3 }
	if err := q.Load(); err != nil {
		t.Fatal(err)
	}
	if q.Daily() != Catalog[3] {
		t.Fatalf("expected catalog[3], got %+v", q.Daily())
	}

	// Same day: the stored quote wins over a new draw.
	again := NewQuotes(s, c)
	again.pick = func(int) int { return 7 }
	again.Load()
	if again.Daily() != Catalog[3] {
		t.Fatalf("expected stored quote, got %+v", again.Daily())
	}

	// Next day: a fresh draw.
	c.Advance(24 * time.Hour)
	next := NewQuotes(s, c)
	next.pick = func(int) int { return 7 }
	next.Load()
	if next.Daily() != Catalog[7] {
		t.Fatalf("expected a new quote on a new day, got %+v", next.Daily())
	}
}

func TestQuotesRefresh(t *testing.T) {
	s := newTestStore(t)
	q := NewQuotes(s, testClock())
	q.pick = func(int) int { return 0 }
	q.Load()

	q.pick = func(int) int { return 11 }
	got, err := q.Refresh()
	if err != nil {
		t.Fatal(err)
	}
	if got != Catalog[11] || q.Daily() != Catalog[11] {
		t.Fatalf("refresh did not take: %+v", got)
	}
}

func TestQuotesToggleFavorite(t *testing.T) {
	s := newTestStore(t)
	q := NewQuotes(s, testClock())
	q.Load()
	quote := Catalog[2]

	added, err := q.ToggleFavorite(quote)
	if err != nil || !added {
		t.Fatalf("expected add, got added=%v err=%v", added, err)
	}
	if !q.IsFavorite(quote) || len(q.Favorites()) != 1 {
		t.Fatal("quote should be a favorite")
	}

	// Match is by text.
	added, _ = q.ToggleFavorite(Quote{Text: quote.Text})
	if added || q.IsFavorite(quote) {
		t.Fatal("second toggle should remove")
	}

	reloaded := NewQuotes(s, testClock())
	reloaded.Load()
	if len(reloaded.Favorites()) != 0 {
		t.Fatal("removal should be persisted")
	}
}

// ============================================================
// Quick links
// ============================================================

func TestLinksDefaultsOnFirstLoad(t *testing.T) {
	s := newTestStore(t)
	l := NewLinks(s, testClock())
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}
	got := l.List()
	if len(got) != 3 || got[0].Title != "Gmail" || got[2].Title != "Drive" {
		t.Fatalf("unexpected defaults %+v", got)
	}
	if _, ok, _ := s.Get(store.KeyQuickLinks); !ok {
		t.Fatal("defaults should be written")
	}
}

func TestLinksEmptyListStaysEmpty(t *testing.T) {
	s := newTestStore(t)
	s.Set(store.KeyQuickLinks, "[]")
	l := NewLinks(s, testClock())
	l.Load()
	if len(l.List()) != 0 {
		t.Fatal("a saved empty list should not be replaced by defaults")
	}
}

func TestLinksAdd(t *testing.T) {
	c := testClock()
	l := NewLinks(newTestStore(t), c)
	l.Load()

	a, err := l.Add("  Docs ", " https://go.dev/doc ")
	if err != nil {
		t.Fatal(err)
	}
	if a.Title != "Docs" || a.URL != "https://go.dev/doc" || a.ID != c.Now().UnixMilli() {
		t.Fatalf("unexpected link %+v", a)
	}

	b, _ := l.Add("Blog", "https://go.dev/blog")
	if b.ID <= a.ID {
		t.Fatalf("ids should stay unique: %d then %d", a.ID, b.ID)
	}
	if len(l.List()) != 5 {
		t.Fatalf("expected 5 links, got %d", len(l.List()))
	}
}

func TestLinksAddInvalid(t *testing.T) {
	l := NewLinks(newTestStore(t), testClock())
	l.Load()
	for _, tc := range [][2]string{{"", "https://x"}, {"X", "  "}, {" ", ""}} {
		if _, err := l.Add(tc[0], tc[1]); !errors.Is(err, ErrInvalidLink) {
			t.Fatalf("Add(%q, %q): expected ErrInvalidLink, got %v", tc[0], tc[1], err)
		}
	}
	if len(l.List()) != 3 {
		t.Fatal("invalid adds should not change the list")
	}
}

func TestLinksRemove(t *testing.T) {
	s := newTestStore(t)
	l := NewLinks(s, testClock())
	l.Load()
	if err := l.Remove(2); err != nil {
		t.Fatal(err)
	}

	reloaded := NewLinks(s, testClock())
	reloaded.Load()
	got := reloaded.List()
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("unexpected links after remove %+v", got)
	}
}

// ============================================================
// Appearance
// ============================================================

func TestAppearanceDefaults(t *testing.T) {
	a := NewAppearance(newTestStore(t))
	if err := a.Load(); err != nil {
		t.Fatal(err)
	}
	if a.Theme() != ThemeLight {
		t.Fatalf("expected light theme, got %s", a.Theme())
	}
	if a.Background() != Backgrounds[0].URL || a.BackgroundName() != "Mountain Vista" {
		t.Fatalf("expected first preset, got %s", a.Background())
	}
	if len(Backgrounds) != 6 {
		t.Fatalf("expected 6 presets, got %d", len(Backgrounds))
	}
}

func TestAppearanceToggleTheme(t *testing.T) {
	s := newTestStore(t)
	a := NewAppearance(s)
	a.Load()

	theme, err := a.ToggleTheme()
	if err != nil || theme != ThemeDark {
		t.Fatalf("expected dark, got %s err=%v", theme, err)
	}
	raw, _, _ := s.Get(store.KeyTheme)
	if raw != "dark" {
		t.Fatalf("theme stored as %q", raw)
	}
	theme, _ = a.ToggleTheme()
	if theme != ThemeLight {
		t.Fatalf("expected light, got %s", theme)
	}
}

func TestAppearanceUnknownThemeFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.Set(store.KeyTheme, "sepia")
	a := NewAppearance(s)
	a.Load()
	if a.Theme() != ThemeLight {
		t.Fatalf("expected light fallback, got %s", a.Theme())
	}
}

func TestAppearanceSetBackground(t *testing.T) {
	s := newTestStore(t)
	a := NewAppearance(s)
	a.Load()

	if err := a.SetBackground("   "); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
	if err := a.SetBackground(Backgrounds[4].URL); err != nil {
		t.Fatal(err)
	}
	if a.BackgroundName() != "Lake View" {
		t.Fatalf("expected Lake View, got %s", a.BackgroundName())
	}
	a.SetBackground("https://example.com/me.png")
	if a.BackgroundName() != "Custom" {
		t.Fatalf("expected Custom, got %s", a.BackgroundName())
	}

	reloaded := NewAppearance(s)
	reloaded.Load()
	if reloaded.Background() != "https://example.com/me.png" {
		t.Fatalf("background not persisted: %s", reloaded.Background())
	}
}
