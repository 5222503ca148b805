package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/eduardolat/uniqid"
	"github.com/eduardolat/uniqid/charset"
	"github.com/eduardolat/uniqid/internal/atomicfile"
	"github.com/eduardolat/uniqid/internal/config"
	"github.com/eduardolat/uniqid/internal/nanoid"
	"github.com/eduardolat/uniqid/internal/telemetry"
)

// genFlags are the gen command flags; each one overrides the config file
type genFlags struct {
	length    int
	charset   string
	count     int
	poolSize  int
	overshoot int
	format    string
	output    string
	stats     bool
}

func (a *app) genCmd() *cobra.Command {
	var f genFlags

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate identifiers, one per line",
		Example: `  uniqid gen                             # one 24 character base36 ID
  uniqid gen --count 1000 --length 16    # a thousand 16 character IDs
  uniqid gen --charset base62            # use digits and both letter cases
  uniqid gen --charset ACGT --length 32  # any literal alphabet
  uniqid gen --format nanoid             # canonical 21 character NanoID
  uniqid gen --count 500 --output ids.txt --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, a.cfg); err != nil {
				return err
			}
			return a.runGen(cmd.Context(), f)
		},
	}

	cmd.Flags().IntVarP(&f.length, "length", "l", uniqid.DefaultLength, "Identifier length")
	cmd.Flags().StringVarP(&f.charset, "charset", "c", config.DefaultCharset, "Alphabet: base36, base62, urlsafe or a literal string of up to 256 characters")
	cmd.Flags().IntVarP(&f.count, "count", "n", config.DefaultCount, "Number of identifiers to generate")
	cmd.Flags().IntVar(&f.poolSize, "pool-size", uniqid.DefaultPoolSize, "Random byte pool size in bytes")
	cmd.Flags().IntVar(&f.overshoot, "overshoot", uniqid.DefaultOvershoot, "Extra bytes requested per sampling round")
	cmd.Flags().StringVarP(&f.format, "format", "f", config.FormatUniqid, "Output format: uniqid or nanoid")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write identifiers atomically to this file instead of stdout")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "Log pool refill and rejection totals when done")

	return cmd
}

// apply copies explicitly set flags over the loaded configuration
func (f genFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Length = &f.length
	}
	if flags.Changed("charset") {
		cfg.Charset = f.charset
	}
	if flags.Changed("count") {
		cfg.Count = &f.count
	}
	if flags.Changed("pool-size") {
		cfg.PoolSize = &f.poolSize
	}
	if flags.Changed("overshoot") {
		cfg.BatchOvershoot = &f.overshoot
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	return cfg.Validate()
}

func (a *app) runGen(ctx context.Context, f genFlags) error {
	cfg := a.cfg
	start := time.Now()

	// Pool activity is only measured when a summary was asked for
	var (
		observer uniqid.Observer
		recorder *telemetry.Recorder
	)
	if f.stats {
		var err error
		if recorder, err = telemetry.NewRecorder(); err != nil {
			return err
		}
		defer func() { _ = recorder.Shutdown(context.Background()) }()
		observer = recorder
	}

	next, err := newIDFunc(cfg, observer)
	if err != nil {
		return err
	}

	a.logger.Debug("generating identifiers",
		"count", cfg.GetCount(),
		"length", cfg.GetLength(),
		"format", cfg.GetFormat(),
		"alphabet_size", utf8.RuneCountInString(cfg.GetCharset()),
		"pool_size", cfg.GetPoolSize())

	var (
		file bytes.Buffer
		out  *bufio.Writer
	)
	if f.output != "" {
		out = bufio.NewWriter(&file)
	} else {
		out = bufio.NewWriter(a.stdout)
	}

	if err := writeIDs(ctx, out, next, cfg.GetCount()); err != nil {
		return err
	}

	if f.output != "" {
		result, err := atomicfile.New().WriteAtomic(f.output, file.Bytes(), atomicfile.DefaultMode)
		if err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		a.logger.Info("identifiers written",
			"path", result.Path,
			"count", cfg.GetCount(),
			"changed", result.Changed)
	}

	a.logger.Debug("generation finished",
		"count", cfg.GetCount(),
		"duration_ms", time.Since(start).Milliseconds())

	if recorder != nil {
		s, err := recorder.Summary(ctx)
		if err != nil {
			return err
		}
		a.logger.Info("pool statistics",
			"refills", s.Refills,
			"refill_bytes", s.RefillBytes,
			"bypasses", s.Bypasses,
			"rejected_bytes", s.RejectedBytes)
	}

	return nil
}

// newIDFunc returns the identifier source selected by the configuration
func newIDFunc(cfg *config.Config, observer uniqid.Observer) (func() (string, error), error) {
	length := cfg.GetLength()
	chars := cfg.GetCharset()

	if cfg.GetFormat() == config.FormatNanoID {
		if chars == charset.URLSafe {
			return func() (string, error) { return nanoid.Generate(length) }, nil
		}
		return func() (string, error) { return nanoid.GenerateAlphabet(chars, length) }, nil
	}

	opts := []uniqid.Option{
		uniqid.WithLength(length),
		uniqid.WithCharset(chars),
		uniqid.WithOvershoot(cfg.GetBatchOvershoot()),
	}
	if observer != nil {
		opts = append(opts, uniqid.WithObserver(observer))
	}

	g, err := uniqid.New(cfg.GetPoolSize(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return g.Generate, nil
}

func writeIDs(ctx context.Context, out *bufio.Writer, next func() (string, error), count int) error {
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted after %d identifiers: %w", i, err)
		}

		id, err := next()
		if err != nil {
			return err
		}
		if _, err := out.WriteString(id); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return out.Flush()
}
