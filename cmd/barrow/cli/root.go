// Package cli implements the barrow command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/barrow"
	"github.com/meigma/barrow/cmd/barrow/cli/config"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	cfgFile string
	verbose bool
)

// cfg is the effective configuration, resolved before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "barrow",
	Short: "Draw progress bars while working through sequences",
	Long: `Barrow draws a progress bar while a sequence of items is consumed.

Bars are unbounded (they grow with every item) unless the number of
items is known up front, in which case a fixed-width bar is drawn
between a pair of delimiters.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/barrow/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	flags.String("progress", config.ModeAuto, "Progress display: auto, tty, or plain")
	flags.Bool("color", true, "Colour bars on terminals")
	flags.String("fill", "=", "Glyph used to fill bars")
	flags.String("open", "<", "Opening delimiter of bounded bars")
	flags.String("close", ">", "Closing delimiter of bounded bars")

	for _, name := range []string{"progress", "color", "fill", "open", "close"} {
		//nolint:errcheck // flag names are defined above
		viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.Version = version
}

// Execute runs the root command.
func Execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = contractError(r)
			fmt.Fprintln(os.Stderr, formatError(err))
		}
	}()

	err = rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

// loadConfig resolves flags, environment, and config file into cfg.
func loadConfig(_ *cobra.Command, _ []string) error {
	if err := config.Init(viper.GetViper(), cfgFile); err != nil {
		return err
	}
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	cfg = loaded
	if used := viper.ConfigFileUsed(); used != "" {
		newLogger().Debug("loaded config", "path", used)
	}
	return nil
}

// newLogger returns the logger handed to adapters.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// contractError converts a recovered adapter panic into an error.
// Panics that do not come from a barrow contract violation are re-raised.
func contractError(r any) error {
	err, ok := r.(error)
	if ok && (errors.Is(err, barrow.ErrMoved) ||
		errors.Is(err, barrow.ErrPositionOverflow) ||
		errors.Is(err, barrow.ErrNegativePosition)) {
		return err
	}
	panic(r)
}

// formatError converts barrow errors to user-friendly messages.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, barrow.ErrPositionOverflow):
		return fmt.Sprintf("Error: progress bar overflowed (input changed while reading?): %v", err)
	case errors.Is(err, barrow.ErrMoved), errors.Is(err, barrow.ErrNegativePosition):
		return fmt.Sprintf("Error: internal error: %v", err)
	case errors.Is(err, barrow.ErrNotSized):
		return "Error: input length is unknown, cannot draw a bounded bar"
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("Error: not found: %v", err)
	case errors.Is(err, context.Canceled):
		return "Error: operation canceled"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
