package barrow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbounded_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fill     string
		position int
		want     string
	}{
		{name: "empty at zero", fill: "*", position: 0, want: ""},
		{name: "one glyph", fill: "*", position: 1, want: "*"},
		{name: "custom glyph", fill: "+", position: 4, want: "++++"},
		{name: "multi-byte glyph", fill: "█", position: 3, want: "███"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Unbounded{Fill: tt.fill}.Render(tt.position))
		})
	}
}

func TestUnbounded_RenderLengthMatchesPosition(t *testing.T) {
	t.Parallel()

	u := Unbounded{Fill: "#"}
	for pos := range 200 {
		assert.Len(t, u.Render(pos), pos)
	}
}

func TestUnbounded_RenderNegativePanics(t *testing.T) {
	t.Parallel()

	err := recoverError(func() { Unbounded{Fill: "*"}.Render(-1) })
	require.ErrorIs(t, err, ErrNegativePosition)
}

func TestUnbounded_WithFillLastWins(t *testing.T) {
	t.Parallel()

	u := Unbounded{Fill: "*"}.WithFill("a").WithFill("b")
	assert.Equal(t, "b", u.Fill)
	assert.Equal(t, "bb", u.Render(2))
}

func TestBounded_Render(t *testing.T) {
	t.Parallel()

	b := Bounded{total: 3, fill: "=", open: "[", close: "]"}

	tests := []struct {
		position int
		want     string
	}{
		{0, "[   ]"},
		{1, "[=  ]"},
		{2, "[== ]"},
		{3, "[===]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Render(tt.position))
	}
}

func TestBounded_RenderWellFormed(t *testing.T) {
	t.Parallel()

	const total = 25
	b := Bounded{total: total, fill: "#", open: "<", close: ">"}

	for pos := 0; pos <= total; pos++ {
		got := b.Render(pos)
		require.Len(t, got, total+2)
		assert.True(t, strings.HasPrefix(got, "<"))
		assert.True(t, strings.HasSuffix(got, ">"))

		inner := got[1 : len(got)-1]
		assert.Equal(t, strings.Repeat("#", pos), inner[:pos])
		assert.Equal(t, strings.Repeat(" ", total-pos), inner[pos:])
	}
}

func TestBounded_RenderFromStart(t *testing.T) {
	t.Parallel()

	// Converted after two items were already produced.
	b := Bounded{total: 2, start: 2, fill: "=", open: "[", close: "]"}

	assert.Equal(t, "[  ]", b.Render(2))
	assert.Equal(t, "[= ]", b.Render(3))
	assert.Equal(t, "[==]", b.Render(4))
}

func TestBounded_RenderOutOfRangePanics(t *testing.T) {
	t.Parallel()

	b := Bounded{total: 2, start: 1, fill: "=", open: "[", close: "]"}

	t.Run("past total", func(t *testing.T) {
		t.Parallel()
		err := recoverError(func() { b.Render(4) })
		require.ErrorIs(t, err, ErrPositionOverflow)
	})

	t.Run("before start", func(t *testing.T) {
		t.Parallel()
		err := recoverError(func() { b.Render(0) })
		require.ErrorIs(t, err, ErrPositionOverflow)
	})
}

func TestBounded_Configuration(t *testing.T) {
	t.Parallel()

	b := Bounded{total: 4, fill: "*", open: "[", close: "]"}
	b2 := b.WithFill("a").WithFill("b").WithDelimiters("(", ")")

	assert.Equal(t, "b", b2.Fill())
	left, right := b2.Delimiters()
	assert.Equal(t, "(", left)
	assert.Equal(t, ")", right)
	assert.Equal(t, 4, b2.Total())

	// The original value is unchanged.
	assert.Equal(t, "*", b.Fill())
	assert.Equal(t, "[**  ]", b.Render(2))
	assert.Equal(t, "(bb  )", b2.Render(2))
}

// recoverError runs fn and returns the error it panicked with, or nil.
func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			}
		}
	}()
	fn()
	return nil
}
