package cli

import (
	"context"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/barrow"
	"github.com/meigma/barrow/cmd/barrow/cli/config"
)

func TestUseTerminal(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	tests := []struct {
		name     string
		mode     string
		terminal bool
		want     bool
	}{
		{name: "plain on terminal", mode: config.ModePlain, terminal: true, want: false},
		{name: "tty off terminal", mode: config.ModeTTY, terminal: false, want: true},
		{name: "auto on terminal", mode: config.ModeAuto, terminal: true, want: true},
		{name: "auto off terminal", mode: config.ModeAuto, terminal: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isTerminal = func(*os.File) bool { return tt.terminal }
			assert.Equal(t, tt.want, useTerminal(tt.mode, os.Stdout))
		})
	}
}

func TestNewSink(t *testing.T) {
	t.Run("plain mode draws lines", func(t *testing.T) {
		s := newSink(config.Config{Progress: config.ModePlain, Color: true}, os.Stdout, 3)
		assert.IsType(t, &barrow.LineSink{}, s)
	})

	t.Run("tty mode without colour", func(t *testing.T) {
		s := newSink(config.Config{Progress: config.ModeTTY, Color: false}, os.Stdout, 3)
		assert.IsType(t, &barrow.TerminalSink{}, s)
	})
}

type captureSink struct {
	bars []string
}

func (c *captureSink) Clear() error { return nil }

func (c *captureSink) Draw(bar string) error {
	c.bars = append(c.bars, bar)
	return nil
}

func TestColorSink(t *testing.T) {
	runningColor.EnableColor()
	doneColor.EnableColor()
	t.Cleanup(func() {
		runningColor.DisableColor()
		doneColor.DisableColor()
	})

	t.Run("bounded bar turns green when full", func(t *testing.T) {
		inner := &captureSink{}
		p := barrow.ToBounded(barrow.Slice([]int{1, 2}, barrow.WithSink(&colorSink{Sink: inner, total: 2})))
		for range p.All() {
		}

		require.Len(t, inner.bars, 3)
		assert.Equal(t, runningColor.Sprint("[  ]"), inner.bars[0])
		assert.Equal(t, runningColor.Sprint("[* ]"), inner.bars[1])
		assert.Equal(t, doneColor.Sprint("[**]"), inner.bars[2])
	})

	t.Run("unbounded bar stays cyan", func(t *testing.T) {
		inner := &captureSink{}
		p := barrow.Wrap[int](barrow.Range(0, 3), barrow.WithSink(&colorSink{Sink: inner, total: -1}))
		for range p.All() {
		}

		require.Len(t, inner.bars, 4)
		for _, bar := range inner.bars {
			assert.True(t, strings.HasPrefix(bar, "\x1b[36m"), "bar %q", bar)
		}
	})
}

func TestConsume(t *testing.T) {
	t.Run("counts items", func(t *testing.T) {
		n, err := consume(context.Background(), slices.Values([]string{"a", "b"}), 0)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("stops when canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := barrow.Wrap[int](barrow.Count(0), barrow.WithSink(barrow.Discard))
		n, err := consume(ctx, p.All(), time.Hour)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, n)
		assert.True(t, p.Done())
	})
}

func TestNewScanBar(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(*os.File) bool { return false }

	assert.Nil(t, newScanBar(config.Config{Progress: config.ModeAuto}, 10, "Counting lines"))
	assert.Nil(t, newScanBar(config.Config{Progress: config.ModePlain}, 10, "Counting lines"))
}
