package phase

import (
	"testing"

	"github.com/Iron-Ham/tgen/internal/errors"
)

func TestAllPhasesFollowTransitionTable(t *testing.T) {
	phases := AllPhases()
	for i := 0; i < len(phases)-1; i++ {
		next, ok := phases[i].Next()
		if !ok {
			t.Fatalf("%s.Next() returned false", phases[i])
		}
		if next != phases[i+1] {
			t.Errorf("%s.Next() = %s, want %s", phases[i], next, phases[i+1])
		}
	}

	if _, ok := Complete.Next(); ok {
		t.Error("Complete.Next() should report no successor")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, p := range AllPhases() {
		if got, want := p.IsTerminal(), p == Complete; got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", p, got, want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{Boot, Collecting, true},
		{Collecting, Blackout, true},
		{Blackout, Finalizing, true},
		{Finalizing, Complete, true},
		{Boot, Blackout, false},
		{Collecting, Boot, false},
		{Complete, Boot, false},
		{Finalizing, Finalizing, false},
		{Phase("unknown"), Boot, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := Check(Boot, Collecting); err != nil {
		t.Errorf("Check(boot, collecting) = %v, want nil", err)
	}

	err := Check(Boot, Complete)
	if err == nil {
		t.Fatal("Check(boot, complete) should fail")
	}
	if !errors.Is(err, errors.ErrInvalidTransition) {
		t.Errorf("error should wrap ErrInvalidTransition, got %v", err)
	}
	want := "phase transition from boot to complete refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
