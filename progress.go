package barrow

import (
	"fmt"
	"io"
	"iter"
)

// Progress wraps a producer and draws a progress bar before each item is produced.
//
// T is the item type, P the inner producer type, and S the display state.
// An adapter starts Unbounded; ToBounded turns it into a Bounded adapter and
// only compiles when P reports its exact remaining length.
//
// Builder methods and conversions take ownership of the adapter they are
// called on: they return a new adapter and leave the old one unusable.
// Any further use of the old adapter panics with ErrMoved.
type Progress[T any, P Producer[T], S State[S]] struct {
	inner    P
	position int
	state    S
	cfg      config

	moved  bool
	done   bool
	warned bool
}

// Wrap creates an unbounded adapter over inner.
func Wrap[T any, P Producer[T]](inner P, opts ...Option) *Progress[T, P, Unbounded] {
	cfg := newConfig(opts)
	return &Progress[T, P, Unbounded]{
		inner: inner,
		state: Unbounded{Fill: cfg.fill},
		cfg:   cfg,
	}
}

// Slice creates an unbounded adapter over the elements of items.
func Slice[T any](items []T, opts ...Option) *Progress[T, *SliceProducer[T], Unbounded] {
	return Wrap[T](FromSlice(items), opts...)
}

// Iter creates an unbounded adapter over seq.
func Iter[T any](seq iter.Seq[T], opts ...Option) *Progress[T, *SeqProducer[T], Unbounded] {
	return Wrap[T](FromSeq(seq), opts...)
}

// WithFill returns the adapter drawing with glyph as the fill.
func (p *Progress[T, P, S]) WithFill(glyph string) *Progress[T, P, S] {
	q := p.take()
	q.state = q.state.WithFill(glyph)
	return &q
}

// WithDelimiters returns the bounded adapter p drawn between left and right.
func WithDelimiters[T any, P Producer[T]](p *Progress[T, P, Bounded], left, right string) *Progress[T, P, Bounded] {
	q := p.take()
	q.state = q.state.WithDelimiters(left, right)
	return &q
}

// ToBounded converts an unbounded adapter into a bounded one.
//
// The bar spans the number of items the inner producer has left at the time
// of the call. The position carries over, the fill glyph is kept, and the
// delimiters come from the adapter's options.
func ToBounded[T any, P SizedProducer[T]](p *Progress[T, P, Unbounded]) *Progress[T, P, Bounded] {
	p.mustLive()
	return bound(p, p.inner.Len())
}

// Bound is the dynamic counterpart of ToBounded for adapters whose producer
// type is not statically known to be sized, such as Producer[T] itself.
// It returns ErrNotSized and leaves p untouched when the producer cannot
// report its remaining length.
func Bound[T any, P Producer[T]](p *Progress[T, P, Unbounded]) (*Progress[T, P, Bounded], error) {
	p.mustLive()
	sized, ok := any(p.inner).(Sized)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSized, p.inner)
	}
	return bound(p, sized.Len()), nil
}

func bound[T any, P Producer[T]](p *Progress[T, P, Unbounded], remaining int) *Progress[T, P, Bounded] {
	if remaining < 0 {
		panic(fmt.Errorf("%w: producer reported %d items remaining", ErrPositionOverflow, remaining))
	}
	q := p.take()
	return &Progress[T, P, Bounded]{
		inner:    q.inner,
		position: q.position,
		state: Bounded{
			total: remaining,
			start: q.position,
			fill:  q.state.Fill,
			open:  q.cfg.open,
			close: q.cfg.close,
		},
		cfg:    q.cfg,
		done:   q.done,
		warned: q.warned,
	}
}

// Next draws the bar for the current position and then produces the next item.
//
// A bar is drawn for every attempt, including the one that discovers the
// inner producer is exhausted, so a sequence of N items draws N+1 bars.
// Once exhausted, Next returns false without drawing.
func (p *Progress[T, P, S]) Next() (T, bool) {
	p.mustLive()
	var zero T
	if p.done {
		return zero, false
	}

	p.draw(p.state.Render(p.position))

	item, ok := p.inner.Next()
	if !ok {
		p.done = true
		return zero, false
	}
	p.position++
	return item, true
}

// All returns an iterator over the remaining items. The inner producer is
// closed when the loop ends, whether by exhaustion or by break.
func (p *Progress[T, P, S]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		//nolint:errcheck // closing a drained producer has nothing useful to report
		defer p.Close()
		for {
			item, ok := p.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Close releases the inner producer if it implements io.Closer.
// Closing a moved adapter is a no-op.
func (p *Progress[T, P, S]) Close() error {
	if p.moved {
		return nil
	}
	p.done = true
	if closer, ok := any(p.inner).(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Position returns the number of items produced so far.
func (p *Progress[T, P, S]) Position() int {
	p.mustLive()
	return p.position
}

// State returns the display state.
func (p *Progress[T, P, S]) State() S {
	p.mustLive()
	return p.state
}

// Done reports whether the inner producer has been exhausted or closed.
func (p *Progress[T, P, S]) Done() bool {
	p.mustLive()
	return p.done
}

// take moves the adapter's contents into a new value and invalidates p.
func (p *Progress[T, P, S]) take() Progress[T, P, S] {
	p.mustLive()
	q := *p
	var zero P
	p.inner = zero
	p.moved = true
	return q
}

func (p *Progress[T, P, S]) mustLive() {
	if p.moved {
		panic(ErrMoved)
	}
}

// draw sends bar to the sink. Display failures never affect the items being
// produced; the first one is logged and later ones are dropped silently.
func (p *Progress[T, P, S]) draw(bar string) {
	err := p.cfg.sink.Clear()
	if err == nil {
		err = p.cfg.sink.Draw(bar)
	}
	if err != nil && !p.warned {
		p.warned = true
		p.cfg.logger.Warn("progress bar could not be drawn", "error", err, "position", p.position)
	}
}
