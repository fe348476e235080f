// Package narrative implements the phase components of the scripted
// progress narrative: the boot log player, the hours-long collection engine,
// the blackout pause and the final counter.
//
// Components never own observable state. They report every change through a
// [Sink], schedule all of their work on a [clock.Scheduler], and expose Stop
// so the owner can disarm them before the next phase begins. Randomness comes
// from an injectable [Rand]; tests substitute a [Sequence].
package narrative
