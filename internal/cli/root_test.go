package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/config"
	"github.com/sadopc/mindful/internal/store"
)

func setupRoot(t *testing.T) (*RootCommand, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "mindful.db")

	root := NewRootCommand(func() (*config.Config, error) {
		cfg := config.Default()
		cfg.DBPath = dbPath
		cfg.ExportDir = filepath.Join(dir, "exports")
		return &cfg, nil
	})
	root.clock = &clock.Fixed{T: time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)}

	out := &bytes.Buffer{}
	root.cmd.SetOut(out)
	root.cmd.SetErr(out)
	return root, dbPath, out
}

func seed(t *testing.T, dbPath string, kv map[string]string) {
	t.Helper()
	s, err := store.New(dbPath)
	require.NoError(t, err)
	defer s.Close()
	for k, v := range kv {
		require.NoError(t, s.Set(k, v))
	}
}

func TestSessionsCommand(t *testing.T) {
	t.Run("fresh database prints zero", func(t *testing.T) {
		root, _, out := setupRoot(t)
		root.cmd.SetArgs([]string{"sessions"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "0\n", out.String())
	})

	t.Run("prints today's count", func(t *testing.T) {
		root, dbPath, out := setupRoot(t)
		seed(t, dbPath, map[string]string{store.KeyFocusSessions: `{"date":"Sun Oct 18 2026","count":4}`})
		root.cmd.SetArgs([]string{"sessions"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "4\n", out.String())
	})

	t.Run("stale day prints zero", func(t *testing.T) {
		root, dbPath, out := setupRoot(t)
		seed(t, dbPath, map[string]string{store.KeyFocusSessions: `{"date":"Sat Oct 17 2026","count":4}`})
		root.cmd.SetArgs([]string{"sessions"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "0\n", out.String())
	})

	t.Run("malformed value fails", func(t *testing.T) {
		root, dbPath, _ := setupRoot(t)
		seed(t, dbPath, map[string]string{store.KeyFocusSessions: `{broken`})
		root.cmd.SetArgs([]string{"sessions"})
		assert.Error(t, root.Execute())
	})
}

func TestExportCommand(t *testing.T) {
	t.Run("writes the backup", func(t *testing.T) {
		root, dbPath, out := setupRoot(t)
		seed(t, dbPath, map[string]string{store.KeyTheme: "dark"})
		root.cmd.SetArgs([]string{"export"})
		require.NoError(t, root.Execute())

		path := strings.TrimSpace(out.String())
		assert.Equal(t, "mindful-dashboard-backup-2026-10-18.json", filepath.Base(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"theme": "dark"`)
	})

	t.Run("dir flag and intentions csv", func(t *testing.T) {
		root, dbPath, out := setupRoot(t)
		seed(t, dbPath, map[string]string{store.KeyDailyIntentions: `{"2026-10-18":"Breathe"}`})
		dir := filepath.Join(t.TempDir(), "elsewhere")
		root.cmd.SetArgs([]string{"export", "--dir", dir, "--intentions-csv"})
		require.NoError(t, root.Execute())

		paths := strings.Fields(out.String())
		require.Len(t, paths, 2)
		for _, p := range paths {
			assert.Equal(t, dir, filepath.Dir(p))
		}
		data, err := os.ReadFile(paths[1])
		require.NoError(t, err)
		assert.Equal(t, "Date,Intention\n2026-10-18,Breathe\n", string(data))
	})
}

func TestGlobalFlags(t *testing.T) {
	t.Run("db flag overrides config", func(t *testing.T) {
		root, _, _ := setupRoot(t)
		other := filepath.Join(t.TempDir(), "other.db")
		root.cmd.SetArgs([]string{"sessions", "--db", other})
		require.NoError(t, root.Execute())
		assert.Equal(t, other, root.cfg.DBPath)
		_, err := os.Stat(other)
		assert.NoError(t, err)
	})

	t.Run("invalid api url is a config error", func(t *testing.T) {
		root, _, _ := setupRoot(t)
		root.cmd.SetArgs([]string{"sessions", "--api-url", "ftp://nope"})
		err := root.Execute()
		var cfgErr *config.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "api_url", cfgErr.Field)
	})

	t.Run("load failure stops the command", func(t *testing.T) {
		root := NewRootCommand(func() (*config.Config, error) {
			return nil, &config.ConfigError{Field: "MINDFUL_DEBUG", Message: "not a boolean"}
		})
		root.cmd.SetArgs([]string{"sessions"})
		assert.Error(t, root.Execute())
	})
}

func TestUnknownArgsRejected(t *testing.T) {
	root, _, _ := setupRoot(t)
	root.cmd.SetArgs([]string{"sessions", "extra"})
	assert.Error(t, root.Execute())
}
