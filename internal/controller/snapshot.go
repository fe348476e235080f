package controller

import (
	"fmt"

	"github.com/Iron-Ham/tgen/internal/phase"
)

// Snapshot is a read-only copy of the observable narrative state.
type Snapshot struct {
	Phase        phase.Phase
	Logs         []string
	Progress     float64
	LinksFound   int
	CurrentTask  string
	FinalPercent float64

	Started  bool
	TornDown bool
}

// FormattedProgress renders the collection progress with 6 decimals.
func (s Snapshot) FormattedProgress() string {
	return fmt.Sprintf("%.6f", s.Progress)
}

// FormattedFinal renders the final counter with 5 decimals.
func (s Snapshot) FormattedFinal() string {
	return fmt.Sprintf("%.5f", s.FinalPercent)
}
