package narrative

import (
	"testing"
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestBlackout_SignalsOnceAfterDuration(t *testing.T) {
	m := clock.NewManual(epoch)
	b := NewBlackout(m, DefaultBlackout)

	calls := 0
	b.Start(func() { calls++ })

	m.Advance(DefaultBlackout - time.Millisecond)
	assert.Equal(t, 0, calls)

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	m.Advance(time.Minute)
	assert.Equal(t, 1, calls)

	// Stopping after the pause elapsed is a no-op.
	b.Stop()
	assert.Equal(t, 0, m.Pending())
}

func TestBlackout_StopCancels(t *testing.T) {
	m := clock.NewManual(epoch)
	b := NewBlackout(m, time.Second)

	fired := false
	b.Start(func() { fired = true })
	b.Stop()
	b.Stop()
	m.Advance(time.Minute)

	assert.False(t, fired)
}

func TestBlackout_NegativeDuration(t *testing.T) {
	m := clock.NewManual(epoch)
	b := NewBlackout(m, -time.Second)

	fired := false
	b.Start(func() { fired = true })
	m.Advance(0)

	assert.True(t, fired)
}
