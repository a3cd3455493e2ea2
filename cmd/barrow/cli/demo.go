package cli

import (
	"context"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/barrow"
)

var (
	demoUnbounded bool
	demoCount     int
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Draw a bar over a slow sample workload",
	Long: `Demo consumes a small sample sequence, pausing for --delay on every
item, and draws a progress bar as it goes.

By default it walks three items with a bounded bar. With --unbounded it
counts upwards with a growing bar until interrupted, or until --count
items when a count is given.

Examples:
  barrow demo
  barrow demo --count 10 --delay 200ms --fill '#'
  barrow demo --unbounded --fill +`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Duration("delay", time.Second, "Simulated work per item")
	demoCmd.Flags().BoolVar(&demoUnbounded, "unbounded", false, "Draw a growing bar with no end")
	demoCmd.Flags().IntVarP(&demoCount, "count", "n", 0, "Number of items (default 3, or endless with --unbounded)")
	//nolint:errcheck // flag name is defined above
	viper.BindPFlag("delay", demoCmd.Flags().Lookup("delay"))
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if demoCount < 0 {
		return fmt.Errorf("count must not be negative, got %d", demoCount)
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := adapterOptions()
	start := time.Now()

	var (
		n   int
		err error
	)
	if demoUnbounded {
		var inner barrow.Producer[int] = barrow.Count(1)
		if demoCount > 0 {
			inner = barrow.Range(1, demoCount+1)
		}
		opts = append(opts, barrow.WithSink(newSink(cfg, os.Stdout, -1)))
		p := barrow.Wrap[int](inner, opts...)
		n, err = consume(ctx, p.All(), cfg.Delay)
	} else {
		items := []int{1, 2, 3}
		if demoCount > 0 {
			items = make([]int, demoCount)
			for i := range items {
				items[i] = i + 1
			}
		}
		opts = append(opts, barrow.WithSink(newSink(cfg, os.Stdout, len(items))))
		p := barrow.ToBounded(barrow.Slice(items, opts...))
		n, err = consume(ctx, p.All(), cfg.Delay)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "processed %d items in %s\n", n, time.Since(start).Round(time.Millisecond))
	return err
}

// adapterOptions returns the adapter options shared by all commands.
func adapterOptions() []barrow.Option {
	return []barrow.Option{
		barrow.WithLogger(newLogger()),
		barrow.WithDefaultFill(cfg.Fill),
		barrow.WithDefaultDelimiters(cfg.Open, cfg.Close),
	}
}

// consume pulls every item from seq, spending delay on each one.
// It stops early when ctx is canceled and returns the number of items handled.
func consume[T any](ctx context.Context, seq iter.Seq[T], delay time.Duration) (int, error) {
	n := 0
	for range seq {
		if err := work(ctx, delay); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// work stands in for an expensive per-item computation.
func work(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
