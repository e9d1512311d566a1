package widgets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/mindful/internal/store"
)

var ErrEmptyURL = errors.New("background url is empty")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Background struct {
	Name string
	URL  string
}

var Backgrounds = []Background{
	{"Mountain Vista", "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1920&q=80"},
	{"Forest Path", "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=1920&q=80"},
	{"Misty Mountains", "https://images.unsplash.com/photo-1470071459604-3b5ec3a7fe05?w=1920&q=80"},
	{"Flower Field", "https://images.unsplash.com/photo-1447752875215-b2761acb3c5d?w=1920&q=80"},
	{"Lake View", "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=1920&q=80"},
	{"Sunset Beach", "https://images.unsplash.com/photo-1501594907352-04cda38ebc29?w=1920&q=80"},
}

// Appearance holds the theme and background image. Both are stored as plain
// strings, not JSON.
type Appearance struct {
	store      Store
	theme      Theme
	background string
}

func NewAppearance(s Store) *Appearance {
	return &Appearance{store: s, theme: ThemeLight}
}

func (a *Appearance) Load() error {
	theme, ok, err := a.store.Get(store.KeyTheme)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	if ok && Theme(theme) == ThemeDark {
		a.theme = ThemeDark
	} else {
		a.theme = ThemeLight
	}

	bg, _, err := a.store.Get(store.KeyBackgroundImage)
	if err != nil {
		return fmt.Errorf("load background: %w", err)
	}
	a.background = bg
	return nil
}

func (a *Appearance) Theme() Theme { return a.theme }

func (a *Appearance) ToggleTheme() (Theme, error) {
	if a.theme == ThemeDark {
		a.theme = ThemeLight
	} else {
		a.theme = ThemeDark
	}
	if err := a.store.Set(store.KeyTheme, string(a.theme)); err != nil {
		return a.theme, fmt.Errorf("save theme: %w", err)
	}
	return a.theme, nil
}

// Background is the chosen image URL, or the first preset when none is set.
func (a *Appearance) Background() string {
	if a.background == "" {
		return Backgrounds[0].URL
	}
	return a.background
}

// BackgroundName names the current background when it is a preset.
func (a *Appearance) BackgroundName() string {
	url := a.Background()
	for _, b := range Backgrounds {
		if b.URL == url {
			return b.Name
		}
	}
	return "Custom"
}

func (a *Appearance) SetBackground(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}
	a.background = url
	if err := a.store.Set(store.KeyBackgroundImage, url); err != nil {
		return fmt.Errorf("save background: %w", err)
	}
	return nil
}
