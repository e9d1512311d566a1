package widgets

import (
	"errors"
	"slices"
	"strings"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/store"
)

var ErrInvalidLink = errors.New("link needs a title and a url")

type QuickLink struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

var DefaultLinks = []QuickLink{
	{ID: 1, Title: "Gmail", URL: "https://mail.google.com"},
	{ID: 2, Title: "Calendar", URL: "https://calendar.google.com"},
	{ID: 3, Title: "Drive", URL: "https://drive.google.com"},
}

type Links struct {
	store Store
	clock clock.Clock
	links []QuickLink
}

func NewLinks(s Store, c clock.Clock) *Links {
	return &Links{store: s, clock: c}
}

// Load reads the saved links. The first load writes the defaults.
func (l *Links) Load() error {
	var links []QuickLink
	ok, err := loadJSON(l.store, store.KeyQuickLinks, &links)
	if err != nil {
		return err
	}
	if !ok {
		l.links = slices.Clone(DefaultLinks)
		return saveJSON(l.store, store.KeyQuickLinks, l.links)
	}
	l.links = links
	return nil
}

func (l *Links) List() []QuickLink {
	return slices.Clone(l.links)
}

// Add appends a link. Its id is the current unix time in milliseconds,
// bumped past the largest existing id.
func (l *Links) Add(title, url string) (QuickLink, error) {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if title == "" || url == "" {
		return QuickLink{}, ErrInvalidLink
	}

	id := l.clock.Now().UnixMilli()
	for _, x := range l.links {
		if x.ID >= id {
			id = x.ID + 1
		}
	}
	link := QuickLink{ID: id, Title: title, URL: url}
	l.links = append(l.links, link)
	return link, saveJSON(l.store, store.KeyQuickLinks, l.links)
}

// Remove deletes the link with id. Removing an unknown id is not an error.
func (l *Links) Remove(id int64) error {
	l.links = slices.DeleteFunc(l.links, func(x QuickLink) bool { return x.ID == id })
	return saveJSON(l.store, store.KeyQuickLinks, l.links)
}
