package barrow

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := ToBounded(Slice([]int{10, 20, 30}, WithSink(NewTerminalSink(&buf))))
	p = WithDelimiters(p, "[", "]").WithFill("=")

	for range p.All() {
	}

	want := "\x1b[2J\x1b[1;1H[   ]\n" +
		"\x1b[2J\x1b[1;1H[=  ]\n" +
		"\x1b[2J\x1b[1;1H[== ]\n" +
		"\x1b[2J\x1b[1;1H[===]\n"
	assert.Equal(t, want, buf.String())
}

func TestLineSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewLineSink(&buf)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Draw("**"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Draw("***"))

	assert.Equal(t, "**\n***\n", buf.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	require.NoError(t, Discard.Clear())
	require.NoError(t, Discard.Draw("anything"))
}
