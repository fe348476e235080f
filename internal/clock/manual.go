package clock

import "time"

// Manual is a Scheduler driven by a virtual clock. Time only moves when
// Advance or AdvanceUntil is called, and due callbacks run synchronously in
// due-time order (creation order breaks ties).
//
// Manual is not safe for concurrent use.
type Manual struct {
	now    time.Time
	frame  time.Duration
	seq    uint64
	timers []*manualTimer
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:   start,
		frame: DefaultFrameInterval,
	}
}

// SetFrameInterval changes the delay used by NextFrame.
func (m *Manual) SetFrameInterval(d time.Duration) {
	if d > 0 {
		m.frame = d
	}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// Every schedules fn every interval, first at now+interval.
func (m *Manual) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return m.schedule(m.now.Add(interval), interval, fn)
}

// After schedules fn once at now+delay.
func (m *Manual) After(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	return m.schedule(m.now.Add(delay), 0, fn)
}

// NextFrame schedules fn one frame interval from now.
func (m *Manual) NextFrame(fn func()) Timer {
	return m.After(m.frame, fn)
}

// Post runs fn immediately; the caller is already on the only thread.
func (m *Manual) Post(fn func()) bool {
	fn()
	return true
}

// Pending reports the number of live timers.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every timer that falls due on
// the way. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := 0
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.fire(t)
		fired++
	}
	if target.After(m.now) {
		m.now = target
	}
	return fired
}

// AdvanceUntil jumps from deadline to deadline until done reports true, no
// timer is live, or the next deadline lies beyond limit from the starting
// time. It returns the virtual time that elapsed and whether done was met.
func (m *Manual) AdvanceUntil(done func() bool, limit time.Duration) (time.Duration, bool) {
	start := m.now
	end := start.Add(limit)
	for !done() {
		t := m.next(end)
		if t == nil {
			return m.now.Sub(start), false
		}
		m.fire(t)
	}
	return m.now.Sub(start), true
}

func (m *Manual) schedule(due time.Time, every time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{due: due, every: every, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) fire(t *manualTimer) {
	m.now = t.due
	if t.every > 0 {
		t.due = t.due.Add(t.every)
	} else {
		t.stopped = true
	}
	t.fn()
}

// next returns the earliest live timer due at or before limit and drops
// stopped timers from the list.
func (m *Manual) next(limit time.Time) *manualTimer {
	var best *manualTimer
	live := m.timers[:0]
	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
	return best
}

type manualTimer struct {
	due     time.Time
	every   time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}
