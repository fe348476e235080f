package narrative

import "github.com/Iron-Ham/tgen/internal/clock"

// FinalCounter animates a counter from its start value to Ceiling, one
// step per render frame. Each step schedules the next one only after the
// current value has been published.
type FinalCounter struct {
	sched clock.Scheduler
	sink  Sink
	rng   Rand
	curve SpeedCurve

	value  float64
	steps  int
	frame  clock.Timer
	done   bool
	onDone func()
}

// NewFinalCounter creates a counter starting at from. An invalid curve
// falls back to DefaultSpeedCurve.
func NewFinalCounter(sched clock.Scheduler, sink Sink, rng Rand, curve SpeedCurve, from float64) *FinalCounter {
	if curve.Validate() != nil {
		curve = DefaultSpeedCurve()
	}
	return &FinalCounter{
		sched: sched,
		sink:  sink,
		rng:   rng,
		curve: append(SpeedCurve(nil), curve...),
		value: Clamp(from),
	}
}

// Start schedules the first step on the next frame. onDone runs once, right
// after the terminal value of exactly Ceiling has been published.
func (f *FinalCounter) Start(onDone func()) {
	f.onDone = onDone
	f.frame = f.sched.NextFrame(f.step)
}

func (f *FinalCounter) step() {
	f.frame = nil
	if f.done {
		return
	}
	f.steps++

	next := Step(f.curve, f.value, f.rng.Float64())
	if next >= Ceiling {
		f.value = Ceiling
		f.sink.SetFinal(Ceiling)
		f.Stop()
		if f.onDone != nil {
			done := f.onDone
			f.onDone = nil
			done()
		}
		return
	}

	f.value = next
	f.sink.SetFinal(next)
	f.frame = f.sched.NextFrame(f.step)
}

// Stop cancels the pending frame.
func (f *FinalCounter) Stop() {
	f.done = true
	if f.frame != nil {
		f.frame.Stop()
		f.frame = nil
	}
}

// Value returns the last published value.
func (f *FinalCounter) Value() float64 {
	return f.value
}

// Steps returns how many frames have been processed.
func (f *FinalCounter) Steps() int {
	return f.steps
}
