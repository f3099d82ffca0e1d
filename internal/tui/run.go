package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/config"
	"github.com/lfreitas/divan/internal/logging"
	"github.com/lfreitas/divan/internal/tui/commands"
)

// Run starts the dashboard and blocks until the user quits.
func Run(remote commands.Fetcher, tracker *appointment.Tracker, cfg *config.Config, professionalID string, debug bool) error {
	closer, err := logging.Init(debug)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	p := tea.NewProgram(New(remote, tracker, cfg, professionalID), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
