package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pricesense/internal/api"
	"pricesense/internal/config"
)

// Run starts the interactive dashboard and blocks until it exits.
func Run(cfg *config.Config, gateway *api.Client, logger zerolog.Logger) error {
	m := newDashModel(cfg, gateway, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
