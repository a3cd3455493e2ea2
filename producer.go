package barrow

import (
	"bufio"
	"io"
	"iter"
)

// Producer yields items one at a time. Next returns false once the sequence
// is exhausted and must keep returning false afterwards.
type Producer[T any] interface {
	Next() (T, bool)
}

// Sized reports exactly how many items remain before exhaustion.
type Sized interface {
	Len() int
}

// SizedProducer is a Producer that knows its remaining length. Only adapters
// over a SizedProducer can be converted to a bounded bar.
type SizedProducer[T any] interface {
	Producer[T]
	Sized
}

// SliceProducer yields the elements of a slice in order.
type SliceProducer[T any] struct {
	items []T
	next  int
}

// FromSlice creates a sized producer over items. The slice is not copied.
func FromSlice[T any](items []T) *SliceProducer[T] {
	return &SliceProducer[T]{items: items}
}

// Next returns the next element.
func (s *SliceProducer[T]) Next() (T, bool) {
	if s.next >= len(s.items) {
		var zero T
		return zero, false
	}
	item := s.items[s.next]
	s.next++
	return item, true
}

// Len returns the number of elements not yet produced.
func (s *SliceProducer[T]) Len() int {
	return len(s.items) - s.next
}

// SeqProducer pulls items from an iter.Seq.
type SeqProducer[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// FromSeq creates a producer over seq. The producer holds resources until
// seq is exhausted or Close is called.
func FromSeq[T any](seq iter.Seq[T]) *SeqProducer[T] {
	next, stop := iter.Pull(seq)
	return &SeqProducer[T]{next: next, stop: stop}
}

// Next returns the next item of the sequence.
func (s *SeqProducer[T]) Next() (T, bool) {
	if s.done {
		var zero T
		return zero, false
	}
	item, ok := s.next()
	if !ok {
		s.done = true
	}
	return item, ok
}

// Close stops the underlying sequence. It is safe to call more than once.
func (s *SeqProducer[T]) Close() error {
	s.done = true
	s.stop()
	return nil
}

// Counter yields consecutive integers forever.
type Counter struct {
	n int
}

// Count creates an infinite producer starting at start.
func Count(start int) *Counter {
	return &Counter{n: start}
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() (int, bool) {
	n := c.n
	c.n++
	return n, true
}

// RangeProducer yields the integers in [start, stop).
type RangeProducer struct {
	cur  int
	stop int
}

// Range creates a sized producer of the integers in [start, stop).
// If stop <= start the range is empty.
func Range(start, stop int) *RangeProducer {
	return &RangeProducer{cur: start, stop: max(start, stop)}
}

// Next returns the next integer in the range.
func (r *RangeProducer) Next() (int, bool) {
	if r.cur >= r.stop {
		return 0, false
	}
	n := r.cur
	r.cur++
	return n, true
}

// Len returns how many integers remain.
func (r *RangeProducer) Len() int {
	return r.stop - r.cur
}

// maxLineSize bounds a single line read by LineProducer.
const maxLineSize = 1 << 20

// LineProducer yields the lines of a reader without their line endings.
type LineProducer struct {
	scanner *bufio.Scanner
	closer  io.Closer
	done    bool
}

// Lines creates a producer over the lines of r. If r implements io.Closer,
// closing the producer closes r.
func Lines(r io.Reader) *LineProducer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lp := &LineProducer{scanner: sc}
	if c, ok := r.(io.Closer); ok {
		lp.closer = c
	}
	return lp
}

// Next returns the next line.
func (l *LineProducer) Next() (string, bool) {
	if l.done || !l.scanner.Scan() {
		l.done = true
		return "", false
	}
	return l.scanner.Text(), true
}

// Err returns the first non-EOF error encountered while reading.
func (l *LineProducer) Err() error {
	return l.scanner.Err()
}

// Close closes the underlying reader if it implements io.Closer.
func (l *LineProducer) Close() error {
	l.done = true
	c := l.closer
	l.closer = nil
	if c != nil {
		return c.Close()
	}
	return nil
}
