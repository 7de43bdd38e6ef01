package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ember/internal/diag"
	"ember/internal/version"
)

// Коды выхода.
const (
	exitOK         = 0
	exitDiagnostic = 1
	exitUsage      = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and maps the outcome onto an exit code. Diagnostics are
// rendered by the commands themselves; other errors are printed here.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	a.close()
	if err == nil {
		return exitOK
	}
	if _, ok := diag.AsError(err); ok {
		return exitDiagnostic
	}
	fmt.Fprintf(stderr, "ember: %v\n", err)
	return exitUsage
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ember",
		Short:         "Compiler for the ember expression language",
		Long:          `ember compiles a small expression language to x86-64 assembly`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "print per-stage timings to stderr")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	pf.String("config", "", "path to ember.toml (default: nearest one above the working directory)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for ring mode")
	pf.String("cpuprofile", "", "write CPU profile to file")
	pf.String("memprofile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(
		newTokenizeCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newIRCmd(a),
		newBuildCmd(a),
		newVersionCmd(a),
	)
	return root
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
