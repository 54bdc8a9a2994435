package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"pricesense/internal/api"
	"pricesense/internal/config"
	"pricesense/internal/tui"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newGateway() *api.Client {
	return api.NewClient(a.Config.API, a.Logger)
}

// Dash runs the interactive dashboard.
func (a *App) Dash() error {
	return tui.Run(a.Config, a.newGateway(), a.Logger)
}

// Health reports backend reachability.
func (a *App) Health(ctx context.Context) error {
	if err := a.newGateway().Healthcheck(ctx); err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	fmt.Fprintln(os.Stdout, "backend reachable")
	return nil
}

// ExportOptions hold parameters for exporting a product's price history.
type ExportOptions struct {
	ProductID string
	CSVPath   string
	PNGPath   string
	MaxPoints int
}
