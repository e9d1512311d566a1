package export

import (
	"encoding/csv"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// IntentionsFileName is the CSV file name for the UTC date of now.
func IntentionsFileName(now time.Time) string {
	return "mindful-intentions-" + now.UTC().Format("2006-01-02") + ".csv"
}

// WriteIntentions writes byDay as CSV into dir and returns the path.
func WriteIntentions(byDay map[string]string, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, IntentionsFileName(now))
	if err := IntentionsToCSV(byDay, path); err != nil {
		return "", err
	}
	return path, nil
}

// IntentionsToCSV writes one Date,Intention row per saved day, oldest first.
func IntentionsToCSV(byDay map[string]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Intention"}); err != nil {
		return err
	}

	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		if err := w.Write([]string{day, byDay[day]}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
