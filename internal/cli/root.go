// Package cli wires configuration, storage and the dashboard into the
// mindful command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/config"
	"github.com/sadopc/mindful/internal/export"
	"github.com/sadopc/mindful/internal/focus"
	"github.com/sadopc/mindful/internal/statusapi"
	"github.com/sadopc/mindful/internal/store"
	"github.com/sadopc/mindful/internal/tasks"
	"github.com/sadopc/mindful/internal/tui"
	"github.com/sadopc/mindful/internal/widgets"
)

// RootCommand is the mindful command tree.
type RootCommand struct {
	cmd   *cobra.Command
	load  func() (*config.Config, error)
	cfg   *config.Config
	clock clock.Clock
}

// NewRootCommand builds the command tree. load supplies the configuration
// before flags are applied; pass config.Load outside tests.
func NewRootCommand(load func() (*config.Config, error)) *RootCommand {
	root := &RootCommand{load: load, clock: clock.System{}}

	root.cmd = &cobra.Command{
		Use:   "mindful",
		Short: "A focus timer and daily dashboard for the terminal",
		Long: `mindful is a terminal dashboard with a focus timer, a task list synced
with a status server, daily intentions, quotes and quick links.

Run without a subcommand to open the dashboard.

CONFIGURATION:
  Priority: command-line flags > environment > .env > config.yaml > defaults

    MINDFUL_DB            SQLite database path
    MINDFUL_API_URL       Task server base url (default: http://localhost:8001/api)
    MINDFUL_ADDR          Listen address for "mindful serve" (default: :8001)
    MINDFUL_EXPORT_DIR    Folder for exports (default: .)
    CORS_ORIGINS          Comma-separated origins allowed by the server (default: *)
    MINDFUL_DEBUG         Write dashboard debug output to debug.log`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runDashboard()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the command tree.
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.String("db", "", "SQLite database path (overrides MINDFUL_DB)")
	flags.String("api-url", "", "Task server base url (overrides MINDFUL_API_URL)")
}

func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task status server",
		Long:  "Serve GET/POST/DELETE /api/status backed by the local database until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				r.cfg.Addr, _ = cmd.Flags().GetString("addr")
			}
			if cmd.Flags().Changed("cors") {
				v, _ := cmd.Flags().GetString("cors")
				r.cfg.CORSOrigins = statusapi.ParseOrigins(v)
			}
			return r.runServe(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	serveCmd.Flags().String("addr", "", "Listen address (overrides MINDFUL_ADDR)")
	serveCmd.Flags().String("cors", "", "Comma-separated allowed origins (overrides CORS_ORIGINS)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of the dashboard data",
		Long: `Write mindful-dashboard-backup-YYYY-MM-DD.json into the export folder.

Examples:
  mindful export
  mindful export --dir ~/backups --intentions-csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("dir") {
				r.cfg.ExportDir, _ = cmd.Flags().GetString("dir")
			}
			withCSV, _ := cmd.Flags().GetBool("intentions-csv")
			return r.runExport(cmd.OutOrStdout(), withCSV)
		},
	}
	exportCmd.Flags().String("dir", "", "Export folder (overrides MINDFUL_EXPORT_DIR)")
	exportCmd.Flags().Bool("intentions-csv", false, "Also write daily intentions as CSV")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Print today's completed focus sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runSessions(cmd.OutOrStdout())
		},
	}

	r.cmd.AddCommand(serveCmd, exportCmd, sessionsCmd)
}

// configure loads the configuration and applies global flag overrides.
func (r *RootCommand) configure(cmd *cobra.Command) error {
	cfg, err := r.load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.cfg = cfg
	return nil
}

func (r *RootCommand) openStore() (*store.Store, error) {
	s, err := store.New(r.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return s, nil
}

func (r *RootCommand) runDashboard() error {
	if r.cfg.Debug {
		f, err := tea.LogToFile(filepath.Join(filepath.Dir(r.cfg.DBPath), "debug.log"), "mindful")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(tui.Deps{
		Store:     s,
		Clock:     r.clock,
		Remote:    tasks.NewClient(r.cfg.APIURL),
		ExportDir: r.cfg.ExportDir,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (r *RootCommand) runServe(parent context.Context, stderr io.Writer) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return statusapi.Serve(ctx, r.cfg.Addr, statusapi.Options{
		Repo:    s,
		Clock:   r.clock,
		Origins: r.cfg.CORSOrigins,
		Logger:  log.New(stderr, "mindful ", log.LstdFlags),
	})
}

func (r *RootCommand) runExport(out io.Writer, withCSV bool) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	now := r.clock.Now()
	path, err := export.WriteBackup(s, r.cfg.ExportDir, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)

	if !withCSV {
		return nil
	}
	in := widgets.NewIntentions(s, r.clock)
	if err := in.Load(); err != nil {
		return err
	}
	path, err = export.WriteIntentions(in.All(), r.cfg.ExportDir, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

func (r *RootCommand) runSessions(out io.Writer) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	l := focus.NewLedger(s, r.clock)
	if err := l.Load(); err != nil {
		return err
	}
	fmt.Fprintln(out, l.Count())
	return nil
}
