package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/mindful/internal/store"
)

// Getter reads raw values from the local store.
type Getter interface {
	Get(key string) (string, bool, error)
}

// Bundle is the backup file: the raw stored string for each key, or null.
// Tasks is always null here since tasks live on the status server.
type Bundle struct {
	Tasks           *string `json:"tasks"`
	DailyIntentions *string `json:"dailyIntentions"`
	FocusSessions   *string `json:"focusSessions"`
	QuickLinks      *string `json:"quickLinks"`
	FavoriteQuotes  *string `json:"favoriteQuotes"`
	Theme           *string `json:"theme"`
	BackgroundImage *string `json:"backgroundImage"`
}

func Backup(kv Getter) (Bundle, error) {
	var b Bundle
	fields := []struct {
		key string
		dst **string
	}{
		{store.KeyDailyIntentions, &b.DailyIntentions},
		{store.KeyFocusSessions, &b.FocusSessions},
		{store.KeyQuickLinks, &b.QuickLinks},
		{store.KeyFavoriteQuotes, &b.FavoriteQuotes},
		{store.KeyTheme, &b.Theme},
		{store.KeyBackgroundImage, &b.BackgroundImage},
	}
	for _, f := range fields {
		v, ok, err := kv.Get(f.key)
		if err != nil {
			return Bundle{}, fmt.Errorf("read %s: %w", f.key, err)
		}
		if ok {
			*f.dst = &v
		}
	}
	return b, nil
}

// FileName is the backup file name for the UTC date of now.
func FileName(now time.Time) string {
	return "mindful-dashboard-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

func ToJSON(b Bundle, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// WriteBackup bundles kv into dir and returns the written path.
func WriteBackup(kv Getter, dir string, now time.Time) (string, error) {
	b, err := Backup(kv)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := ToJSON(b, path); err != nil {
		return "", err
	}
	return path, nil
}
