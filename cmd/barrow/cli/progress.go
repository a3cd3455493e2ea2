package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/meigma/barrow"
	"github.com/meigma/barrow/cmd/barrow/cli/config"
)

// isTerminal reports whether f is attached to a terminal.
// Replaced in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useTerminal returns true if bars should be redrawn in place on out.
func useTerminal(mode string, out *os.File) bool {
	switch mode {
	// Plain mode prints one bar per line
	case config.ModePlain:
		return false
	// TTY mode forces redrawing regardless of terminal detection
	case config.ModeTTY:
		return true
	// Auto mode: redraw only if connected to a TTY
	default:
		return isTerminal(out)
	}
}

// newSink creates the sink bars are drawn to for the configured mode.
// total is the number of items a bounded bar spans, or -1 for unbounded bars.
func newSink(c config.Config, out *os.File, total int) barrow.Sink {
	if !useTerminal(c.Progress, out) {
		return barrow.NewLineSink(out)
	}
	sink := barrow.NewTerminalSink(out)
	if !c.Color || color.NoColor {
		return sink
	}
	return &colorSink{Sink: sink, total: total}
}

var (
	runningColor = color.New(color.FgCyan)
	doneColor    = color.New(color.FgGreen)
)

// colorSink tints bars cyan while in progress and green once a bounded bar is full.
type colorSink struct {
	barrow.Sink
	total int
	drawn int
}

// Draw colours bar before handing it to the wrapped sink.
// A bounded bar over n items is drawn n+1 times; the last draw is the full bar.
func (s *colorSink) Draw(bar string) error {
	c := runningColor
	if s.total >= 0 && s.drawn >= s.total {
		c = doneColor
	}
	s.drawn++
	return s.Sink.Draw(c.Sprint(bar))
}

// newScanBar creates the byte bar shown on stderr while a file is read ahead
// of a bounded run. A negative total draws a spinner. It returns nil when
// progress is not shown.
func newScanBar(c config.Config, total int64, description string) *progressbar.ProgressBar {
	if !useTerminal(c.Progress, os.Stderr) {
		return nil
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionClearOnFinish(),
	)
}
