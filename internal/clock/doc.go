// Package clock provides the cooperative scheduler that drives every phase
// of the narrative.
//
// All callbacks scheduled through a [Scheduler] run one at a time on a single
// logical thread. Two implementations are provided:
//
//   - [Loop] runs callbacks on a dedicated goroutine using wall-clock timers.
//     Commands submitted with [Scheduler.Post] are queued behind pending
//     ticks, so starts, resets and teardowns never interleave with a tick.
//   - [Manual] keeps a virtual clock that only moves when [Manual.Advance] is
//     called. Callbacks run synchronously inside Advance, which makes phase
//     timing fully deterministic in tests and in the simulate command.
//
// # Ownership
//
// Every [Timer] belongs to the component that created it. Components collect
// their timers in a [Group] and release them with [Group.StopAll]; the
// controller composes those calls when a phase ends or the narrative resets.
//
// A Timer that has been stopped on the scheduler thread never fires again,
// even if its deadline already elapsed and the callback was queued.
package clock
