package narrative

// LogBuffer is the ordered, append-only sequence of visible log lines.
// It is not safe for concurrent use; the controller guards it.
type LogBuffer struct {
	lines []string
}

// Append adds line to the end of the buffer.
func (b *LogBuffer) Append(line string) {
	b.lines = append(b.lines, line)
}

// AppendWindowed adds line and then drops the oldest lines so that at most
// window remain. A non-positive window behaves like Append.
func (b *LogBuffer) AppendWindowed(line string, window int) {
	b.lines = append(b.lines, line)
	if window <= 0 || len(b.lines) <= window {
		return
	}
	kept := make([]string, window)
	copy(kept, b.lines[len(b.lines)-window:])
	b.lines = kept
}

// Lines returns a copy of the buffered lines, oldest first.
func (b *LogBuffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int {
	return len(b.lines)
}

// Reset empties the buffer.
func (b *LogBuffer) Reset() {
	b.lines = nil
}
