package narrative

// Sink receives every observable change a component makes. The controller
// implements it; all calls arrive on the scheduler thread.
type Sink interface {
	// AppendLog appends a line without trimming the log.
	AppendLog(line string)

	// AppendWindowedLog appends a line and then keeps only the newest
	// window lines.
	AppendWindowedLog(line string, window int)

	// SetProgress publishes the collection progress ratio in [0,100].
	SetProgress(progress float64)

	// AddLinks increases the links counter by n.
	AddLinks(n int)

	// SetTask replaces the current task label.
	SetTask(label string)

	// SetFinal publishes the final counter value in [0,100].
	SetFinal(percent float64)
}

// Component is a phase worker the controller can arm and disarm.
type Component interface {
	// Start arms the component. onDone is called exactly once when the
	// component's work is finished, unless Stop is called first.
	Start(onDone func())

	// Stop cancels every timer the component owns. It is idempotent.
	Stop()
}
