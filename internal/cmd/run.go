package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Iron-Ham/tgen/internal/clock"
	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/controller"
	"github.com/Iron-Ham/tgen/internal/event"
	"github.com/Iron-Ham/tgen/internal/logging"
	"github.com/Iron-Ham/tgen/internal/phase"
	"github.com/Iron-Ham/tgen/internal/tui"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// fastFactor turns the 7 hour collection run into 30 seconds.
const fastFactor = 840

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the narrative in real time",
	Long: `Play the narrative in wall-clock time.

When stdout is a terminal the full-screen TUI is used (r restarts, q quits).
Otherwise, or with --plain, events are printed as plain lines until the
narrative completes or the process is interrupted.

Edits to the config file are picked up on the next restart.`,
	Args: cobra.NoArgs,
	RunE: runNarrative,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("plain", false, "print plain lines instead of the TUI")
	cmd.Flags().Bool("fast", false, "shorten the collection phase to 30 seconds")
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runNarrative(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	plain, _ := cmd.Flags().GetBool("plain")
	fast, _ := cmd.Flags().GetBool("fast")
	useTUI := !plain && isTerminal(os.Stdout)

	prepare := func(c *config.Config) controller.Settings {
		if fast {
			c.Narrative = c.Narrative.Scaled(fastFactor)
		}
		return controller.SettingsFromConfig(c)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	loop := clock.NewLoop(cfg.Narrative.Frame())
	defer loop.Close()

	bus := event.NewBus()
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		logger.Error("event handler panicked", "event", eventType, "panic", fmt.Sprint(recovered), "stack", string(stack))
	})

	observeNarrative(bus, logger)

	settings := prepare(cfg)
	ctrl := controller.New(controller.Options{
		Scheduler: loop,
		Settings:  &settings,
		Bus:       bus,
		Logger:    logger,
	})

	config.Watch(viper.GetViper(), func(next *config.Config, e fsnotify.Event, err error) {
		if err != nil {
			logger.Warn("config reload rejected", "file", e.Name, "error", err.Error())
			return
		}
		logger.Info("config reloaded", "file", e.Name)
		ctrl.Reconfigure(prepare(next))
	})

	logger.Info("narrative starting", "tui", useTUI, "fast", fast, "collection", settings.Collection.Duration.String())
	ctrl.Start()

	if useTUI {
		err = tui.New(ctrl, cfg.TUI, logger).Run()
	} else {
		err = runPlain(cmd.Context(), ctrl, cmd.OutOrStdout())
	}

	ctrl.Teardown()
	loop.Sync()
	return err
}

// runPlain prints events until the narrative completes or ctx is cancelled
// by an interrupt.
func runPlain(ctx context.Context, ctrl *controller.Controller, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderer := tui.NewPlainRenderer(w, tui.DefaultSampleInterval)
	renderer.Attach(ctrl.Bus())
	defer renderer.Detach()

	done := make(chan struct{})
	var once sync.Once
	id := ctrl.Bus().Subscribe(event.TypePhaseChanged, func(e event.Event) {
		if e.(event.PhaseChangedEvent).To == phase.Complete {
			once.Do(func() { close(done) })
		}
	})
	defer ctrl.Bus().Unsubscribe(id)

	// Covers a narrative that completed before the subscription
	if ctrl.Snapshot().Phase == phase.Complete {
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
	return nil
}

// observeNarrative records phase changes and resets in the debug log.
func observeNarrative(bus *event.Bus, logger *logging.Logger) {
	log := logger.WithComponent("observer")
	bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
		pc := e.(event.PhaseChangedEvent)
		log.WithPhase(string(pc.To)).Debug("phase entered", "from", string(pc.From), "at", pc.Timestamp())
	})
	bus.Subscribe(event.TypeReset, func(e event.Event) {
		log.Debug("narrative reset", "at", e.Timestamp())
	})
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return logger, nil
}
