// Package event provides the synchronous pub-sub bus the controller uses to
// announce narrative changes.
//
// Observers such as the plain renderer, the simulate command and the logging
// hook subscribe to event types instead of polling the controller. Events are
// published on the scheduler thread, so handlers must return quickly and must
// not call back into blocking controller APIs.
//
// # Event Types
//
//   - [PhaseChangedEvent] ("phase.changed"): a phase transition happened
//   - [LogAppendedEvent] ("log.appended"): a line joined the visible log
//   - [CollectionSampledEvent] ("collection.sampled"): collection metrics changed
//   - [FinalSteppedEvent] ("final.stepped"): the final counter moved
//   - [ResetEvent] ("narrative.reset"): observable state returned to its initial values
//   - [TeardownEvent] ("narrative.teardown"): every timer was cancelled for good
//
// # Usage
//
//	bus := event.NewBus()
//	id := bus.Subscribe(event.TypePhaseChanged, func(e event.Event) {
//	    pc := e.(event.PhaseChangedEvent)
//	    fmt.Println(pc.From, "->", pc.To)
//	})
//	defer bus.Unsubscribe(id)
//
// Handler panics are recovered and reported through the bus's panic hook so
// that one misbehaving observer cannot stall the narrative.
package event
