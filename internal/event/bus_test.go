package event

import (
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/tgen/internal/phase"
)

var at = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe(TypePhaseChanged, func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe(TypePhaseChanged, func(e Event) {
		received = e
	})

	bus.Publish(NewPhaseChangedEvent(at, phase.Boot, phase.Collecting))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	pc, ok := received.(PhaseChangedEvent)
	if !ok {
		t.Fatalf("expected PhaseChangedEvent, got %T", received)
	}
	if pc.From != phase.Boot || pc.To != phase.Collecting {
		t.Errorf("unexpected transition %s -> %s", pc.From, pc.To)
	}
	if !pc.Timestamp().Equal(at) {
		t.Errorf("Timestamp() = %v, want %v", pc.Timestamp(), at)
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypeReset, func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	bus.Publish(NewFinalSteppedEvent(at, 12.5))
}

func TestBus_TypedBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "all") })
	bus.Subscribe(TypeLogAppended, func(e Event) { order = append(order, "typed-1") })
	bus.Subscribe(TypeLogAppended, func(e Event) { order = append(order, "typed-2") })

	bus.Publish(NewLogAppendedEvent(at, "[INIT] hello", 0))

	want := []string{"typed-1", "typed-2", "all"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	keep := bus.Subscribe(TypeReset, func(e Event) { calls++ })
	drop := bus.Subscribe(TypeReset, func(e Event) { calls += 100 })

	if !bus.Unsubscribe(drop) {
		t.Error("Unsubscribe should return true for an existing subscription")
	}
	if bus.Unsubscribe(drop) {
		t.Error("Unsubscribe should return false the second time")
	}
	if bus.Unsubscribe("missing") {
		t.Error("Unsubscribe should return false for unknown IDs")
	}

	bus.Publish(NewResetEvent(at))
	if calls != 1 {
		t.Errorf("expected only the kept handler to run, calls = %d", calls)
	}

	bus.Unsubscribe(keep)
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", bus.SubscriptionCount())
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypeReset, func(e Event) {})
	bus.SubscribeAll(func(e Event) {})

	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d after Clear", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	var hooked string
	bus.OnPanic(func(eventType string, recovered any, stack []byte) {
		hooked = eventType
		if len(stack) == 0 {
			t.Error("expected a stack trace")
		}
	})

	secondCalled := false
	bus.Subscribe(TypeTeardown, func(e Event) { panic("boom") })
	bus.Subscribe(TypeTeardown, func(e Event) { secondCalled = true })

	bus.Publish(NewTeardownEvent(at))

	if !secondCalled {
		t.Error("handlers after a panicking handler should still run")
	}
	if hooked != TypeTeardown {
		t.Errorf("panic hook got %q, want %q", hooked, TypeTeardown)
	}
}

func TestBus_PanicWithoutHook(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypeReset, func(e Event) { panic("boom") })
	bus.Publish(NewResetEvent(at))
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe(TypeFinalStepped, func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewFinalSteppedEvent(at, float64(i)))
		}()
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("expected 50 deliveries, got %d", count)
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus()
	seen := make(map[string]bool)
	for range 1000 {
		id := bus.Subscribe(TypeReset, func(e Event) {})
		if seen[id] {
			t.Fatalf("duplicate subscription ID %q", id)
		}
		seen[id] = true
	}
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewPhaseChangedEvent(at, "", phase.Boot), TypePhaseChanged},
		{NewLogAppendedEvent(at, "x", 2), TypeLogAppended},
		{NewCollectionSampledEvent(at, 1.5, 3, "task"), TypeCollectionSample},
		{NewFinalSteppedEvent(at, 99), TypeFinalStepped},
		{NewResetEvent(at), TypeReset},
		{NewTeardownEvent(at), TypeTeardown},
	}

	for _, tt := range tests {
		if got := tt.event.EventType(); got != tt.want {
			t.Errorf("EventType() = %q, want %q", got, tt.want)
		}
		if !tt.event.Timestamp().Equal(at) {
			t.Errorf("%s: Timestamp() = %v, want %v", tt.want, tt.event.Timestamp(), at)
		}
	}
}
