//go:build profiling
// +build profiling

// Command profile drives large workloads through barrow adapters and records profiles.
//
// Run with: go run -tags profiling ./cmd/profile -items 5000 -profile cpu
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/felixge/fgprof"
	"github.com/grafana/pyroscope-go"

	"github.com/meigma/barrow"
)

type profileKind string

const (
	profileCPU   profileKind = "cpu"
	profileFG    profileKind = "fgprof"
	profileTrace profileKind = "trace"
	profileNone  profileKind = "none"
)

const (
	modeBounded   = "bounded"
	modeUnbounded = "unbounded"
	modeDynamic   = "dynamic"
	modeAll       = "all"
)

func main() {
	var (
		items    = flag.Int("items", 5_000, "number of items per run (bar output grows quadratically)")
		mode     = flag.String("mode", modeBounded, "mode: bounded, unbounded, dynamic, or all")
		sinkName = flag.String("sink", "line", "sink: line (rendered to io.Discard) or discard (not written at all)")
		profile  = flag.String("profile", "cpu", "profile type: cpu, fgprof, trace, none")
		outDir   = flag.String("out", "profiles", "output directory for profiles")
		label    = flag.String("label", "", "label suffix for profile files")
		repeat   = flag.Int("repeat", 1, "number of iterations")
		logLevel = flag.String("log-level", "", "log level: debug, info, warn, error")
		timeout  = flag.Duration("timeout", 15*time.Minute, "overall timeout")
		pyroAddr = flag.String("pyroscope", "", "Pyroscope server URL (enables streaming, disables local profiles)")
	)
	flag.Parse()

	runID := time.Now().UTC().Format("20060102T150405Z")

	modeValue := strings.ToLower(*mode)
	switch modeValue {
	case modeBounded, modeUnbounded, modeDynamic, modeAll:
	default:
		log.Fatalf("invalid mode %q (expected %s, %s, %s, or %s)", *mode, modeBounded, modeUnbounded, modeDynamic, modeAll)
	}

	profileKindValue := profileKind(strings.ToLower(*profile))
	if !isValidProfile(profileKindValue) {
		log.Fatalf("invalid profile %q (expected cpu, fgprof, trace, none)", *profile)
	}

	if *sinkName != "line" && *sinkName != "discard" {
		log.Fatalf("invalid sink %q (expected line or discard)", *sinkName)
	}

	if *items < 0 {
		log.Fatalf("items must be >= 0")
	}
	if *repeat < 1 {
		log.Fatalf("repeat must be >= 1")
	}

	// When Pyroscope is enabled, stream profiles instead of writing locally
	var pyroProfiler *pyroscope.Profiler
	if *pyroAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName:   "barrow-profile",
			ServerAddress:     *pyroAddr,
			BasicAuthUser:     os.Getenv("PYROSCOPE_BASIC_AUTH_USER"),
			BasicAuthPassword: os.Getenv("PYROSCOPE_BASIC_AUTH_PASSWORD"),
			UploadRate:        5 * time.Second,
			Logger:            pyroscope.StandardLogger,
			Tags: map[string]string{
				"mode":    modeValue,
				"sink":    *sinkName,
				"git_sha": os.Getenv("GITHUB_SHA"),
				"run_id":  runID,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
			},
		})
		if err != nil {
			log.Fatalf("start pyroscope: %v", err)
		}
		pyroProfiler = profiler
		log.Printf("streaming profiles to %s", *pyroAddr)
	} else if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create profile output dir: %v", err)
	}

	labelParts := []string{modeValue}
	if *label != "" {
		labelParts = append(labelParts, sanitizeLabel(*label))
	}
	labelParts = append(labelParts, runID)
	labelValue := strings.Join(labelParts, "_")

	var stopProfile func() error
	if *pyroAddr == "" {
		var err error
		stopProfile, err = startProfile(profileKindValue, *outDir, labelValue)
		if err != nil {
			log.Fatalf("start profile: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var logger *slog.Logger
	if *logLevel != "" {
		level, err := parseLogLevel(*logLevel)
		if err != nil {
			log.Fatalf("parse log level: %v", err)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	for i := range *repeat {
		if *repeat > 1 {
			log.Printf("iteration %d/%d", i+1, *repeat)
		}
		for _, w := range workloads(modeValue) {
			sink := newCountingSink(*sinkName)
			start := time.Now()
			n, err := w.run(ctx, *items, barrow.WithSink(sink), barrow.WithLogger(logger))
			if err != nil {
				log.Fatalf("%s: %v", w.name, err)
			}
			log.Printf("%s complete: %s items, %s of bars in %s",
				w.name, humanize.Comma(int64(n)), humanize.Bytes(sink.bytes), time.Since(start))
		}
	}

	if pyroProfiler != nil {
		if err := pyroProfiler.Stop(); err != nil {
			log.Fatalf("stop pyroscope: %v", err)
		}
		log.Printf("pyroscope profiling stopped")
	} else {
		if stopErr := stopProfile(); stopErr != nil {
			log.Fatalf("stop profile: %v", stopErr)
		}
		if err := writeHeapProfile(*outDir, labelValue); err != nil {
			log.Fatalf("write heap profile: %v", err)
		}
		if err := writeAllocsProfile(*outDir, labelValue); err != nil {
			log.Fatalf("write allocs profile: %v", err)
		}
	}
}

// drive consumes seq, checking ctx every 1024 items.
func drive(ctx context.Context, seq iter.Seq[int]) (int, error) {
	n := 0
	for range seq {
		n++
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// workload is one way of driving an adapter over n items.
type workload struct {
	name string
	run  func(ctx context.Context, n int, opts ...barrow.Option) (int, error)
}

func workloads(mode string) []workload {
	bounded := workload{name: modeBounded, run: func(ctx context.Context, n int, opts ...barrow.Option) (int, error) {
		return drive(ctx, barrow.ToBounded(barrow.Wrap[int](barrow.Range(0, n), opts...)).All())
	}}
	unbounded := workload{name: modeUnbounded, run: func(ctx context.Context, n int, opts ...barrow.Option) (int, error) {
		return drive(ctx, barrow.Wrap[int](barrow.Range(0, n), opts...).All())
	}}
	// Bound goes through the dynamic Len check instead of the static one.
	dynamic := workload{name: modeDynamic, run: func(ctx context.Context, n int, opts ...barrow.Option) (int, error) {
		var inner barrow.Producer[int] = barrow.Range(0, n)
		p, err := barrow.Bound(barrow.Wrap[int](inner, opts...))
		if err != nil {
			return 0, err
		}
		return drive(ctx, p.All())
	}}

	switch mode {
	case modeBounded:
		return []workload{bounded}
	case modeUnbounded:
		return []workload{unbounded}
	case modeDynamic:
		return []workload{dynamic}
	default:
		return []workload{bounded, unbounded, dynamic}
	}
}

// countingSink tallies the bytes of every bar it is handed. In line mode the
// bars are also rendered to io.Discard so the write path is profiled.
type countingSink struct {
	out   barrow.Sink
	bytes uint64
}

func newCountingSink(name string) *countingSink {
	if name == "line" {
		return &countingSink{out: barrow.NewLineSink(io.Discard)}
	}
	return &countingSink{out: barrow.Discard}
}

func (s *countingSink) Clear() error { return s.out.Clear() }

func (s *countingSink) Draw(bar string) error {
	s.bytes += uint64(len(bar))
	return s.out.Draw(bar)
}

func isValidProfile(kind profileKind) bool {
	switch kind {
	case profileCPU, profileFG, profileTrace, profileNone:
		return true
	default:
		return false
	}
}

func startProfile(kind profileKind, outDir, label string) (func() error, error) {
	switch kind {
	case profileCPU:
		f, err := os.Create(filepath.Join(outDir, "cpu_"+label+".pprof"))
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		return func() error {
			pprof.StopCPUProfile()
			return f.Close()
		}, nil
	case profileFG:
		f, err := os.Create(filepath.Join(outDir, "fgprof_"+label+".pprof"))
		if err != nil {
			return nil, err
		}
		stop := fgprof.Start(f, fgprof.FormatPprof)
		return func() error {
			return errors.Join(stop(), f.Close())
		}, nil
	case profileTrace:
		f, err := os.Create(filepath.Join(outDir, "trace_"+label+".out"))
		if err != nil {
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		return func() error {
			trace.Stop()
			return f.Close()
		}, nil
	case profileNone:
		return func() error { return nil }, nil
	default:
		return nil, fmt.Errorf("unknown profile type: %s", kind)
	}
}

func writeHeapProfile(outDir, label string) error {
	f, err := os.Create(filepath.Join(outDir, "heap_"+label+".pprof"))
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

func writeAllocsProfile(outDir, label string) error {
	f, err := os.Create(filepath.Join(outDir, "allocs_"+label+".pprof"))
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.Lookup("allocs").WriteTo(f, 0)
}

func sanitizeLabel(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, value)
}

func parseLogLevel(value string) (slog.Leveler, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return nil, fmt.Errorf("unknown level %q", value)
	}
}
