package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/Iron-Ham/tgen/internal/controller"
	"github.com/Iron-Ham/tgen/internal/narrative"
	"github.com/Iron-Ham/tgen/internal/phase"
	"github.com/Iron-Ham/tgen/internal/tui"
	"github.com/spf13/cobra"
)

// simulationEpoch anchors virtual time so offsets are stable across runs.
var simulationEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// simulationSlack bounds how long the narrative may run past collection.
const simulationSlack = 6 * time.Hour

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the narrative on a virtual clock and print its timeline",
	Long: `Run the whole narrative on a virtual clock, without waiting in real time,
and print when each phase was entered along with a short summary.

Use --seed for a reproducible run and --duration to override the length
of the collection phase.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64("seed", 0, "random seed (0 picks a random one)")
	simulateCmd.Flags().Duration("duration", 0, "collection phase length (default from config)")
	simulateCmd.Flags().Bool("json", false, "print the result as JSON")
	simulateCmd.Flags().Bool("events", false, "print narrative events as they happen")
	rootCmd.AddCommand(simulateCmd)
}

type simulationStep struct {
	Phase  phase.Phase   `json:"phase"`
	Offset time.Duration `json:"offset_ns"`
}

type simulationResult struct {
	Seed         uint64           `json:"seed,omitempty"`
	Timeline     []simulationStep `json:"timeline"`
	LinksFound   int              `json:"links_found"`
	FinalPercent float64          `json:"final_percent"`
	Elapsed      time.Duration    `json:"elapsed_ns"`
	Completed    bool             `json:"completed"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	seed, _ := cmd.Flags().GetUint64("seed")
	duration, _ := cmd.Flags().GetDuration("duration")
	asJSON, _ := cmd.Flags().GetBool("json")
	showEvents, _ := cmd.Flags().GetBool("events")

	if duration < 0 {
		return fmt.Errorf("--duration must not be negative, got %s", duration)
	}
	if duration > 0 {
		cfg.Narrative.CollectionDurationMs = duration.Milliseconds()
	}

	result, err := simulate(cfg, seed, showEvents, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printSimulation(cmd.OutOrStdout(), result)
	return nil
}

func simulate(cfg *config.Config, seed uint64, showEvents bool, w io.Writer) (*simulationResult, error) {
	m := clock.NewManual(simulationEpoch)
	m.SetFrameInterval(cfg.Narrative.Frame())

	rng := narrative.NewRand()
	if seed != 0 {
		rng = narrative.NewSeededRand(seed)
	}

	settings := controller.SettingsFromConfig(cfg)
	ctrl := controller.New(controller.Options{
		Scheduler: m,
		Settings:  &settings,
		Rand:      rng,
	})

	if showEvents {
		renderer := tui.NewPlainRenderer(w, tui.DefaultSampleInterval)
		renderer.Attach(ctrl.Bus())
		defer renderer.Detach()
	}

	ctrl.Start()
	limit := settings.Collection.Duration + simulationSlack
	elapsed, ok := m.AdvanceUntil(func() bool {
		return ctrl.Snapshot().Phase == phase.Complete
	}, limit)
	if !ok {
		return nil, fmt.Errorf("narrative did not complete within %s", limit)
	}

	snap := ctrl.Snapshot()
	result := &simulationResult{
		Seed:         seed,
		LinksFound:   snap.LinksFound,
		FinalPercent: snap.FinalPercent,
		Elapsed:      elapsed,
		Completed:    ok,
	}
	for _, tr := range ctrl.History() {
		result.Timeline = append(result.Timeline, simulationStep{
			Phase:  tr.To,
			Offset: tr.At.Sub(simulationEpoch),
		})
	}

	ctrl.Teardown()
	return result, nil
}

func printSimulation(w io.Writer, r *simulationResult) {
	_, _ = fmt.Fprintln(w, "Timeline:")
	for _, step := range r.Timeline {
		_, _ = fmt.Fprintf(w, "  %12s  %s\n", step.Offset.Round(time.Millisecond), step.Phase)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Links found:   %d\n", r.LinksFound)
	_, _ = fmt.Fprintf(w, "Final percent: %.5f\n", r.FinalPercent)
	_, _ = fmt.Fprintf(w, "Elapsed:       %s\n", r.Elapsed.Round(time.Millisecond))
}
