package clock

import "sync"

// Group is an owned list of live timers. A component keeps one Group per
// lifetime and stops it wholesale when the component is disposed.
type Group struct {
	mu     sync.Mutex
	timers []Timer
}

// Add records t in the group and returns it for chaining.
func (g *Group) Add(t Timer) Timer {
	if t == nil {
		return nil
	}
	g.mu.Lock()
	g.timers = append(g.timers, t)
	g.mu.Unlock()
	return t
}

// StopAll stops every recorded timer and empties the group.
// Calling it on an empty group is a no-op.
func (g *Group) StopAll() {
	g.mu.Lock()
	timers := g.timers
	g.timers = nil
	g.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}

// Len reports how many timers were recorded since the last StopAll.
// Timers that fired on their own are still counted.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}
