package event

import (
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
)

// Handler is a function that handles an event.
type Handler func(Event)

// PanicHook receives recovered handler panics.
type PanicHook func(eventType string, recovered any, stack []byte)

const wildcard = "*"

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous pub-sub event bus. It is safe for concurrent use;
// handlers run on the publishing goroutine.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string][]subscription
	nextID  atomic.Uint64
	onPanic PanicHook
}

// NewBus creates an event bus. Recovered panics are dropped until a hook is
// installed with OnPanic.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// OnPanic installs the hook that receives recovered handler panics.
func (b *Bus) OnPanic(hook PanicHook) {
	b.mu.Lock()
	b.onPanic = hook
	b.mu.Unlock()
}

// Subscribe registers handler for one event type and returns an ID for
// Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))
	b.subs[eventType] = append(b.subs[eventType], subscription{id: id, handler: handler})
	return id
}

// SubscribeAll registers handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription by ID and reports whether it existed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.subs {
		i := slices.IndexFunc(subs, func(s subscription) bool { return s.id == id })
		if i < 0 {
			continue
		}
		b.subs[eventType] = slices.Delete(slices.Clone(subs), i, i+1)
		return true
	}
	return false
}

// Publish delivers e to the handlers of its type, then to wildcard
// handlers, each group in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	typed := slices.Clone(b.subs[e.EventType()])
	all := slices.Clone(b.subs[wildcard])
	hook := b.onPanic
	b.mu.RUnlock()

	for _, s := range typed {
		b.deliver(s.handler, e, hook)
	}
	for _, s := range all {
		b.deliver(s.handler, e, hook)
	}
}

func (b *Bus) deliver(h Handler, e Event, hook PanicHook) {
	defer func() {
		if r := recover(); r != nil && hook != nil {
			hook(e.EventType(), r, debug.Stack())
		}
	}()
	h(e)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]subscription)
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}
