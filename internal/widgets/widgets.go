// Package widgets holds the small dashboard widgets that live entirely in
// the local store: daily intentions, quotes, quick links and appearance.
package widgets

import (
	"encoding/json"
	"fmt"
)

// Store is the persistent string store the widgets read and write.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

func loadJSON(s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
