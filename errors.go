package barrow

import "errors"

// Sentinel errors for contract violations.
//
// The adapter panics with an error wrapping one of these when it is misused;
// such a panic indicates a bug in the caller, not a recoverable condition.
var (
	// ErrMoved indicates an adapter was used after a builder call or a
	// bounded conversion took ownership of its inner producer.
	ErrMoved = errors.New("barrow: adapter used after move")

	// ErrPositionOverflow indicates a bounded bar was asked to render a
	// position outside the range it was created for.
	ErrPositionOverflow = errors.New("barrow: position outside bounded range")

	// ErrNegativePosition indicates a render was requested for a negative position.
	ErrNegativePosition = errors.New("barrow: negative position")

	// ErrNotSized indicates a bounded conversion was requested for a producer
	// that cannot report its exact remaining length.
	ErrNotSized = errors.New("barrow: producer length unknown")
)
