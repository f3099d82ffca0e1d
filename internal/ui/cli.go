// Package ui implements the divan command line interface.
package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/config"
	"github.com/lfreitas/divan/internal/session"
	"github.com/lfreitas/divan/internal/store"
	"github.com/lfreitas/divan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	kv      *store.SQLite
	session *session.Session
	remote  *api.Client
	root    *cobra.Command
	debug   bool
	noColor bool
}

// NewApp creates the CLI application. The session is rehydrated from the
// local store; the remote client signs requests with its token.
func NewApp(cfg *config.Config, kv *store.SQLite, sess *session.Session) *App {
	a := &App{
		config:  cfg,
		kv:      kv,
		session: sess,
		remote:  api.New(cfg.API.BaseURL, cfg.Timeout(), sess),
	}

	a.root = &cobra.Command{
		Use:   "divan",
		Short: "Agenda para profissionais de saúde mental",
		Long: `Divan manages a mental-health professional's schedule.

Running it without a subcommand opens the dashboard: a calendar with the
day's appointments and the confirmation flow for past sessions.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runDashboard()
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to divan-debug.log)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.loginCmd())
	a.root.AddCommand(a.logoutCmd())
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.appointmentsCmd())
	a.root.AddCommand(a.confirmCmd())
	a.root.AddCommand(a.noshowCmd())
	a.root.AddCommand(a.pendingCmd())
	a.root.AddCommand(a.reportCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("divan %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) runDashboard() error {
	professionalID, err := a.session.ProfessionalID()
	if err != nil {
		return fmt.Errorf("faça login primeiro (divan login): %w", err)
	}
	tracker, err := a.newTracker(context.Background())
	if err != nil {
		return err
	}
	return tui.Run(a.remote, tracker, a.config, professionalID, a.debug)
}

// newTracker builds a confirmation tracker backed by the local store.
func (a *App) newTracker(ctx context.Context) (*appointment.Tracker, error) {
	records := store.NewConfirmationStore(a.kv)
	tracker, err := appointment.NewTracker(ctx, records, a.remote)
	if err != nil {
		return nil, fmt.Errorf("loading confirmation records: %w", err)
	}
	return tracker, nil
}

// requireLogin returns the logged-in professional id or a friendly error.
func (a *App) requireLogin() (string, error) {
	id, err := a.session.ProfessionalID()
	if err != nil {
		return "", fmt.Errorf("faça login primeiro (divan login)")
	}
	return id, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the local store.
func (a *App) Close() error {
	return a.kv.Close()
}
