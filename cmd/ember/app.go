package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"ember/internal/config"
	"ember/internal/diag"
	"ember/internal/diagfmt"
	"ember/internal/driver"
	"ember/internal/observ"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	cfg      config.Config
	colorOut bool
	colorErr bool
	quiet    bool
	diagFmt  string // pretty, short или json
	timer    *observ.Timer

	cleanups []func()
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	explicit, _ := flags.GetString("config")
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg, err := config.Resolve(explicit, wd)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg, cmd); err != nil {
		return err
	}
	a.cfg = cfg

	mode, _ := config.ParseColor(cfg.Output.Color)
	a.colorOut = mode.Enabled(isTerminal(a.stdout))
	a.colorErr = mode.Enabled(isTerminal(a.stderr))
	a.quiet, _ = flags.GetBool("quiet")

	diagFormat, _ := flags.GetString("diag-format")
	switch diagFormat {
	case "pretty", "short", "json":
		a.diagFmt = diagFormat
	default:
		return fmt.Errorf("unknown diagnostics format %q (want pretty, short or json)", diagFormat)
	}

	if cfg.Output.Timings {
		a.timer = observ.NewTimer()
	}

	stopProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.cleanups = append(a.cleanups, stopProf)

	stopTrace, err := setupTracing(cmd, &cfg)
	if err != nil {
		return err
	}
	a.cleanups = append(a.cleanups, stopTrace)
	return nil
}

// close runs cleanups in reverse order.
func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// applyFlags overrides cfg with the persistent flags the user actually set.
func applyFlags(cfg *config.Config, cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("color", &cfg.Output.Color)
	str("trace-level", &cfg.Trace.Level)
	str("trace-format", &cfg.Trace.Format)
	str("trace-mode", &cfg.Trace.Mode)
	if flags.Changed("trace") {
		cfg.Trace.Output, _ = flags.GetString("trace")
		if cfg.Trace.Level == "off" && !flags.Changed("trace-level") {
			cfg.Trace.Level = "phase"
		}
	}
	if flags.Changed("trace-ring-size") {
		cfg.Trace.RingSize, _ = flags.GetInt("trace-ring-size")
	}
	if flags.Changed("timings") {
		cfg.Output.Timings, _ = flags.GetBool("timings")
	}
	return cfg.Validate()
}

// compile runs the pipeline for path up to stopAfter. On a compile error the
// diagnostic is rendered to stderr and the *diag.Error is returned.
func (a *app) compile(ctx context.Context, path string, stopAfter driver.Stage, trivia bool) (*driver.Result, error) {
	req := a.request(path, stopAfter)
	req.Trivia = trivia
	res, err := driver.Compile(ctx, req)
	a.finish(res)
	return res, err
}

func (a *app) request(path string, stopAfter driver.Stage) driver.Request {
	return driver.Request{
		Path:      path,
		Stdin:     a.stdin,
		NFC:       a.cfg.Output.NormalizeNFC,
		StopAfter: stopAfter,
		Timer:     a.timer,
	}
}

// finish renders the diagnostic and timings of a finished compilation.
func (a *app) finish(res *driver.Result) {
	if res != nil && res.Bag.Len() > 0 {
		a.reportDiagnostics(res)
	}
	if a.timer != nil && !a.quiet {
		fmt.Fprintln(a.stderr, a.timer.Table())
	}
}

func (a *app) reportDiagnostics(res *driver.Result) {
	switch a.diagFmt {
	case "json":
		if err := diagfmt.JSON(a.stderr, res.Bag, res.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
			fmt.Fprintf(a.stderr, "ember: %v\n", err)
		}
		return
	case "short":
		fmt.Fprint(a.stderr, diag.FormatShort(res.Bag.Items(), res.FileSet, true))
		return
	}
	ctxLines, err := safecast.Conv[int8](min(a.cfg.Output.Context, 8))
	if err != nil {
		ctxLines = 0
	}
	diagfmt.Pretty(a.stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     a.colorErr,
		Context:   ctxLines,
		ShowNotes: true,
	})
}
