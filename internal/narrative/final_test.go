package narrative

import (
	"testing"
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalCounter_TerminatesAtExactlyCeiling(t *testing.T) {
	m := clock.NewManual(epoch)
	sink := &recorder{}
	f := NewFinalCounter(m, sink, NewSeededRand(1), DefaultSpeedCurve(), 0)

	calls := 0
	f.Start(func() { calls++ })

	_, ok := m.AdvanceUntil(func() bool { return calls > 0 }, 24*time.Hour)
	require.True(t, ok, "counter should finish")

	require.NotEmpty(t, sink.finals)
	assert.Equal(t, 100.0, sink.finals[len(sink.finals)-1])
	for i, v := range sink.finals {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 100.0)
		if i > 0 {
			require.GreaterOrEqual(t, v, sink.finals[i-1])
		}
	}
	for _, v := range sink.finals[:len(sink.finals)-1] {
		require.Less(t, v, 100.0, "the terminal value is emitted once")
	}
	assert.Equal(t, len(sink.finals), f.Steps())

	m.Advance(time.Hour)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestFinalCounter_FromNearCeiling(t *testing.T) {
	m := clock.NewManual(epoch)
	sink := &recorder{}
	f := NewFinalCounter(m, sink, NewSequence(0.9), DefaultSpeedCurve(), 99.999)

	done := false
	f.Start(func() { done = true })
	m.Advance(clock.DefaultFrameInterval)

	assert.True(t, done)
	assert.Equal(t, []float64{100}, sink.finals)
	assert.Equal(t, 100.0, f.Value())
}

func TestFinalCounter_SmallDrawsCrawl(t *testing.T) {
	m := clock.NewManual(epoch)
	sink := &recorder{}
	f := NewFinalCounter(m, sink, NewSequence(0.1), DefaultSpeedCurve(), 99.999)

	f.Start(nil)
	m.Advance(clock.DefaultFrameInterval)

	require.Len(t, sink.finals, 1)
	assert.InDelta(t, 99.9992, sink.finals[0], 1e-9)
}

func TestFinalCounter_OneStepPerFrame(t *testing.T) {
	m := clock.NewManual(epoch)
	m.SetFrameInterval(10 * time.Millisecond)
	sink := &recorder{}
	f := NewFinalCounter(m, sink, NewSequence(0.5), DefaultSpeedCurve(), 0)
	f.Start(nil)

	m.Advance(9 * time.Millisecond)
	assert.Empty(t, sink.finals)

	m.Advance(41 * time.Millisecond)
	assert.Len(t, sink.finals, 5)
	assert.Equal(t, 1, m.Pending(), "only the next frame is ever scheduled")
}

func TestFinalCounter_StopCancels(t *testing.T) {
	m := clock.NewManual(epoch)
	sink := &recorder{}
	f := NewFinalCounter(m, sink, NewSequence(0.5), DefaultSpeedCurve(), 0)

	done := false
	f.Start(func() { done = true })
	m.Advance(100 * time.Millisecond)
	f.Stop()
	f.Stop()

	n := len(sink.finals)
	m.Advance(time.Hour)
	assert.Equal(t, n, len(sink.finals))
	assert.False(t, done)
	assert.Equal(t, 0, m.Pending())
}

func TestFinalCounter_InvalidCurveFallsBack(t *testing.T) {
	m := clock.NewManual(epoch)
	sink := &recorder{}
	f := NewFinalCounter(m, sink, NewSequence(0.5), SpeedCurve{{Threshold: 0, Bound: 0}}, 0)
	f.Start(nil)

	m.Advance(clock.DefaultFrameInterval)
	require.Len(t, sink.finals, 1)
	assert.InDelta(t, 0.05, sink.finals[0], 1e-12)
}
