package narrative

import "math/rand/v2"

// Rand is the random source used by the collection engine and the final
// counter. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewRand returns a source seeded from the runtime's random state.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a reproducible source.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence is a Rand that replays a fixed list of draws in a loop.
// IntN maps the next draw onto [0, n).
type Sequence struct {
	draws []float64
	pos   int
}

// NewSequence returns a Sequence over draws. Values are clamped into [0, 1).
// An empty Sequence always draws 0.
func NewSequence(draws ...float64) *Sequence {
	s := &Sequence{draws: make([]float64, len(draws))}
	for i, d := range draws {
		switch {
		case d < 0:
			d = 0
		case d >= 1:
			d = 0.999999999
		}
		s.draws[i] = d
	}
	return s
}

// Float64 returns the next draw.
func (s *Sequence) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	d := s.draws[s.pos%len(s.draws)]
	s.pos++
	return d
}

// IntN returns the next draw scaled to [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		panic("narrative: invalid argument to IntN")
	}
	return int(s.Float64() * float64(n))
}
