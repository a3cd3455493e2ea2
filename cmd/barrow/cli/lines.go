package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/meigma/barrow"
	"github.com/meigma/barrow/internal/meter"
	"github.com/meigma/barrow/internal/source"
)

var (
	linesBounded bool
	linesDigest  bool
	linesDelay   time.Duration
)

var linesCmd = &cobra.Command{
	Use:   "lines <file>",
	Short: "Draw a bar while reading the lines of a file",
	Long: `Lines reads a text file line by line and draws a progress bar as it goes.

Gzip and zstd compressed files are decompressed on the fly. The bar is
unbounded unless --bounded is given, in which case the file is read up
front so the number of lines is known.

Examples:
  barrow lines access.log
  barrow lines --bounded --delay 10ms data.csv.zst
  barrow lines --digest release-notes.txt.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runLines,
}

func init() {
	linesCmd.Flags().BoolVarP(&linesBounded, "bounded", "b", false, "Count lines first and draw a bounded bar")
	linesCmd.Flags().BoolVar(&linesDigest, "digest", false, "Print the sha256 digest of the decompressed content")
	linesCmd.Flags().DurationVar(&linesDelay, "delay", 0, "Simulated work per line")
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, args []string) error {
	f, err := source.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := signalContext()
	defer cancel()

	var scan *progressbar.ProgressBar
	if linesBounded {
		// Compressed sizes say nothing about how much will be read.
		total := int64(-1)
		if f.Format == source.Plain {
			total = f.Size
		}
		scan = newScanBar(cfg, total, "Counting lines")
	}
	var onRead meter.Callback
	if scan != nil {
		onRead = func(n int64) {
			//nolint:errcheck // progress bar errors are not critical
			scan.Set64(n)
		}
	}

	counter := meter.NewReader(f, onRead)
	var digester digest.Digester
	var lines *barrow.LineProducer
	if linesDigest {
		digester = digest.Canonical.Digester()
		lines = barrow.Lines(io.TeeReader(counter, digester.Hash()))
	} else {
		lines = barrow.Lines(counter)
	}

	opts := adapterOptions()
	var n int
	if linesBounded {
		var all []string
		for {
			line, ok := lines.Next()
			if !ok {
				break
			}
			all = append(all, line)
		}
		if scan != nil {
			//nolint:errcheck // progress bar errors are not critical
			scan.Finish()
		}
		if err := lines.Err(); err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		opts = append(opts, barrow.WithSink(newSink(cfg, os.Stdout, len(all))))
		p := barrow.ToBounded(barrow.Slice(all, opts...))
		n, err = consume(ctx, p.All(), linesDelay)
	} else {
		opts = append(opts, barrow.WithSink(newSink(cfg, os.Stdout, -1)))
		p := barrow.Wrap[string](lines, opts...)
		n, err = consume(ctx, p.All(), linesDelay)
		if err == nil {
			if scanErr := lines.Err(); scanErr != nil {
				err = fmt.Errorf("read %s: %w", args[0], scanErr)
			}
		}
	}
	if err != nil {
		return err
	}

	read := counter.BytesRead()
	//nolint:gosec // G115: byte counts are never negative
	fmt.Fprintf(cmd.ErrOrStderr(), "%s lines (%s) read from %s %s file\n",
		humanize.Comma(int64(n)), humanize.Bytes(uint64(read)), humanize.Bytes(uint64(f.Size)), f.Format)
	if digester != nil {
		fmt.Fprintln(cmd.OutOrStdout(), digester.Digest())
	}
	return nil
}
