package barrow

import (
	"log/slog"
	"os"
)

// Option configures an adapter at construction time.
type Option func(*config)

// config holds construction-time settings shared by every state of an adapter.
type config struct {
	sink   Sink
	logger *slog.Logger
	fill   string
	open   string
	close  string
}

func newConfig(opts []Option) config {
	cfg := config{
		sink:   NewTerminalSink(os.Stdout),
		logger: slog.New(slog.DiscardHandler),
		fill:   DefaultFill,
		open:   DefaultOpen,
		close:  DefaultClose,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSink sets the destination for rendered bars. By default bars are drawn
// to standard output with a terminal clear before each one.
func WithSink(s Sink) Option {
	return func(c *config) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithLogger sets a logger for the adapter. By default, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultFill sets the fill glyph the adapter starts with.
func WithDefaultFill(glyph string) Option {
	return func(c *config) {
		c.fill = glyph
	}
}

// WithDefaultDelimiters sets the delimiters used when the adapter is
// converted to a bounded bar.
func WithDefaultDelimiters(left, right string) Option {
	return func(c *config) {
		c.open, c.close = left, right
	}
}
