// Package tui renders the narrative in the terminal, either as a full-screen
// Bubbletea program or as plain lines for pipes and dumb terminals.
package tui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	cfg     config.TUIConfig
	logger  *logging.Logger
}

// New creates a new TUI application
func New(n Narrative, cfg config.TUIConfig, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:  NewModel(n, cfg),
		cfg:    cfg,
		logger: logger.WithComponent("tui"),
	}
}

// Run starts the TUI and blocks until the user quits or a termination
// signal arrives.
func (a *App) Run() error {
	var opts []tea.ProgramOption
	if a.cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	a.program = tea.NewProgram(a.model, opts...)

	// Quit cleanly on signals so the caller can tear the narrative down
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		a.logger.Info("signal received, quitting", "signal", sig.String())
		a.program.Send(tea.Quit())
	}()

	a.logger.Info("tui started", "alt_screen", a.cfg.AltScreen)
	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)

	if err != nil {
		a.logger.Error("tui exited with error", "error", err.Error())
	}
	return err
}
