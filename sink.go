package barrow

import (
	"io"
)

// clearScreen erases the terminal and moves the cursor to the top-left corner.
const clearScreen = "\x1b[2J\x1b[1;1H"

// Sink receives rendered bars in emission order.
type Sink interface {
	// Clear prepares the output for a fresh bar.
	Clear() error
	// Draw writes one rendered bar.
	Draw(bar string) error
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Clear() error      { return nil }
func (discard) Draw(string) error { return nil }

// TerminalSink redraws bars on an ANSI terminal, clearing the screen first.
type TerminalSink struct {
	w io.Writer
}

// NewTerminalSink creates a sink writing ANSI control sequences to w.
func NewTerminalSink(w io.Writer) *TerminalSink {
	return &TerminalSink{w: w}
}

// Clear erases the screen and homes the cursor.
func (s *TerminalSink) Clear() error {
	_, err := io.WriteString(s.w, clearScreen)
	return err
}

// Draw writes bar followed by a line break.
func (s *TerminalSink) Draw(bar string) error {
	_, err := io.WriteString(s.w, bar+"\n")
	return err
}

// LineSink writes each bar on its own line without control sequences.
// It suits logs, pipes, and other outputs that are not terminals.
type LineSink struct {
	w io.Writer
}

// NewLineSink creates a sink writing one line per bar to w.
func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

// Clear is a no-op.
func (s *LineSink) Clear() error { return nil }

// Draw writes bar followed by a line break.
func (s *LineSink) Draw(bar string) error {
	_, err := io.WriteString(s.w, bar+"\n")
	return err
}
