package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/barrow"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "canceled", err: fmt.Errorf("demo: %w", context.Canceled), want: "Error: operation canceled"},
		{name: "not sized", err: barrow.ErrNotSized, want: "Error: input length is unknown, cannot draw a bounded bar"},
		{name: "missing file", err: fmt.Errorf("open x: %w", os.ErrNotExist), want: "Error: not found: open x: file does not exist"},
		{name: "other", err: errors.New("boom"), want: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatError(tt.err))
		})
	}
}

func TestFormatError_Overflow(t *testing.T) {
	err := fmt.Errorf("%w: position 4 not in [0, 3]", barrow.ErrPositionOverflow)
	assert.Contains(t, formatError(err), "progress bar overflowed")
}

func TestContractError(t *testing.T) {
	t.Run("contract violations become errors", func(t *testing.T) {
		err := contractError(barrow.ErrMoved)
		require.ErrorIs(t, err, barrow.ErrMoved)
	})

	t.Run("other panics are re-raised", func(t *testing.T) {
		assert.PanicsWithValue(t, "unrelated", func() { contractError("unrelated") })
	})
}
