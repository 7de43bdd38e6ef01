package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/ui"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] file.em",
		Short: "Compile a source file to x86-64 assembly",
		Long: `Build writes GNU as assembly for the program. Link it against a runtime
providing print_int, print_bool and read_int.`,
		Args: cobra.ExactArgs(1),
	}
	output := cmd.Flags().StringP("output", "o", "", "output file (- for stdout; default: <input>.s)")
	withUI := cmd.Flags().Bool("ui", false, "show stage progress")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := *output
		if out == "" {
			out = a.cfg.Build.Output
		}
		if out == "" {
			out = defaultOutput(path)
		}
		useUI := (*withUI || a.cfg.Build.UI) && !a.quiet && isTerminal(a.stderr)

		var res *driver.Result
		var err error
		if useUI {
			res, err = ui.RunCompile(cmd.Context(), filepath.Base(path), a.request(path, driver.StageCodegen), a.stderr)
			a.finish(res)
		} else {
			res, err = a.compile(cmd.Context(), path, driver.StageCodegen, false)
		}
		if err != nil {
			return err
		}

		if out == "-" {
			_, err = fmt.Fprint(a.stdout, res.Asm)
			return err
		}
		if err := os.WriteFile(out, []byte(res.Asm), 0o644); err != nil { //nolint:gosec // ассемблер не секрет
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		if !a.quiet {
			fmt.Fprintf(a.stderr, "wrote %s\n", out)
		}
		return nil
	}
	return cmd
}

// defaultOutput maps prog.em to prog.s; stdin goes to stdout.
func defaultOutput(path string) string {
	if path == driver.StdinPath {
		return "-"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".s"
}
