package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eduardolat/uniqid/internal/config"
	"github.com/eduardolat/uniqid/internal/version"
)

// app holds the state shared by every command
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	cfg    *config.Config

	configPath string
	debug      bool
	quiet      bool
	silent     bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, slog.LevelInfo),
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// logLevel applies the hierarchy: debug > default > quiet > silent
func (a *app) logLevel() slog.Level {
	switch {
	case a.debug:
		return slog.LevelDebug // Shows everything (-4)
	case a.silent:
		return slog.LevelError // Only errors (8)
	case a.quiet:
		return slog.LevelWarn // Warnings and errors (4)
	default:
		return slog.LevelInfo // Normal operation (0)
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uniqid",
		Short: "Generate cryptographically random identifiers",
		Long: banner + `
uniqid mints unbiased random identifiers over any alphabet. Random
bytes are read from the platform CSPRNG in large batches and served from a
reusable pool, so generating many identifiers costs few system calls.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(a.stderr, a.logLevel())
			return a.loadConfig()
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (most verbose)")
	cmd.PersistentFlags().BoolVar(&a.quiet, "quiet", false, "Show only warnings and errors")
	cmd.PersistentFlags().BoolVar(&a.silent, "silent", false, "Show only errors (most quiet)")

	cmd.AddCommand(a.genCmd(), a.versionCmd())
	return cmd
}

func (a *app) loadConfig() error {
	if a.configPath == "" {
		a.cfg = config.Default()
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded",
		"path", a.configPath,
		"pool_size", cfg.GetPoolSize(),
		"length", cfg.GetLength(),
		"format", cfg.GetFormat())
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, banner)
			fmt.Fprintf(out, "Version: %s\n", version.Version)
			fmt.Fprintf(out, "Commit:  %s\n", version.Commit)
			fmt.Fprintf(out, "Built:   %s\n", version.Date)
			return nil
		},
	}
}
