package barrow

import (
	"fmt"
	"strings"
)

// Default glyphs used when no option overrides them.
const (
	DefaultFill  = "*"
	DefaultOpen  = "["
	DefaultClose = "]"
)

// State is the display strategy of an adapter.
//
// The set of states is closed: Unbounded and Bounded are the only
// implementations. The type parameter S is the implementing type itself,
// which lets WithFill return the concrete state.
type State[S any] interface {
	// Render returns the bar for the given position. It must not mutate the state.
	Render(position int) string
	// WithFill returns a copy of the state using glyph as the fill.
	WithFill(glyph string) S

	state()
}

// Unbounded renders a bar that grows by one glyph per position and has no end.
type Unbounded struct {
	Fill string
}

// Render returns Fill repeated position times.
func (u Unbounded) Render(position int) string {
	if position < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativePosition, position))
	}
	return strings.Repeat(u.Fill, position)
}

// WithFill returns a copy of u using glyph as the fill.
func (u Unbounded) WithFill(glyph string) Unbounded {
	u.Fill = glyph
	return u
}

func (Unbounded) state() {}

// Bounded renders a fixed-width bar between a pair of delimiters.
//
// A Bounded value can only be obtained by converting an adapter whose inner
// producer reports its exact remaining length, so the total always matches
// the number of items the producer will yield. The bar measures progress
// from the position at which the conversion happened.
type Bounded struct {
	total int
	start int
	fill  string
	open  string
	close string
}

// Render returns the delimited bar for position.
//
// It panics with ErrPositionOverflow if position lies outside the range
// [start, start+total] the state was created for.
func (b Bounded) Render(position int) string {
	done := position - b.start
	if done < 0 || done > b.total {
		panic(fmt.Errorf("%w: position %d not in [%d, %d]",
			ErrPositionOverflow, position, b.start, b.start+b.total))
	}

	var sb strings.Builder
	sb.Grow(len(b.open) + done*len(b.fill) + (b.total - done) + len(b.close))
	sb.WriteString(b.open)
	sb.WriteString(strings.Repeat(b.fill, done))
	sb.WriteString(strings.Repeat(" ", b.total-done))
	sb.WriteString(b.close)
	return sb.String()
}

// WithFill returns a copy of b using glyph as the fill.
func (b Bounded) WithFill(glyph string) Bounded {
	b.fill = glyph
	return b
}

// WithDelimiters returns a copy of b drawn between left and right.
func (b Bounded) WithDelimiters(left, right string) Bounded {
	b.open, b.close = left, right
	return b
}

// Total returns the number of items the bar spans.
func (b Bounded) Total() int { return b.total }

// Fill returns the fill glyph.
func (b Bounded) Fill() string { return b.fill }

// Delimiters returns the opening and closing delimiters.
func (b Bounded) Delimiters() (left, right string) { return b.open, b.close }

func (Bounded) state() {}
