// Package barrow draws a progress bar while a sequence is consumed.
//
// A Progress adapter wraps any Producer. Every call to Next first draws the
// bar for the current position to a Sink and then pulls the next item from
// the inner producer. The adapter never inspects the items it passes through.
//
// # Unbounded and bounded bars
//
// Adapters start unbounded: the bar grows by one glyph per item and has no
// end, which suits infinite producers:
//
//	p := barrow.Wrap[int](barrow.Count(0)).WithFill("+")
//	for n := range p.All() {
//	    work(n)
//	}
//
// When the inner producer reports how many items it has left (it implements
// Sized), the adapter can be converted into a fixed-width bar between a pair
// of delimiters:
//
//	p := barrow.ToBounded(barrow.Slice([]int{10, 20, 30})).WithFill("=")
//	p = barrow.WithDelimiters(p, "<", ">")
//	for n := range p.All() {
//	    work(n)
//	}
//
// The conversion is checked by the compiler: ToBounded does not accept an
// adapter over a producer without a Len method. Bound performs the same
// conversion with a runtime check and returns ErrNotSized instead.
//
// # Ownership
//
// Builder calls and conversions consume the adapter they are called on and
// return a new one. The old value panics with ErrMoved if it is used again,
// so exactly one adapter owns the inner producer at any time.
//
// # Output
//
// By default bars are drawn to standard output after clearing the terminal.
// Use WithSink to draw elsewhere, for example NewLineSink for output that is
// not a terminal or Discard to draw nothing.
package barrow
