package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Keys persisted by the dashboard.
const (
	KeyDailyIntentions = "dailyIntentions"
	KeyFocusSessions   = "focusSessions"
	KeyQuickLinks      = "quickLinks"
	KeyFavoriteQuotes  = "favoriteQuotes"
	KeyDailyQuote      = "dailyQuote"
	KeyTheme           = "theme"
	KeyBackgroundImage = "backgroundImage"
)

// Keys lists every dashboard key in backup order.
var Keys = []string{
	KeyDailyIntentions,
	KeyFocusSessions,
	KeyQuickLinks,
	KeyFavoriteQuotes,
	KeyDailyQuote,
	KeyTheme,
	KeyBackgroundImage,
}

// Get returns the raw value stored under key. ok is false when the key has
// never been written.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Clear removes every key. Status records are left alone; they belong to the
// status API.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	if err != nil {
		return fmt.Errorf("clear kv: %w", err)
	}
	return nil
}

// All returns every stored row ordered by key.
func (s *Store) All() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT key, value FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list kv: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
