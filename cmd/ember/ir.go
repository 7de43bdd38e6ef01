package main

import (
	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newIRCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ir [flags] file.em",
		Short: "Print the intermediate representation of a source file",
		Args:  cobra.ExactArgs(1),
	}
	format := cmd.Flags().String("format", "text", "output format (text|json|msgpack)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := diagfmt.ParseFormat(*format)
		if err != nil {
			return err
		}
		res, err := a.compile(cmd.Context(), args[0], driver.StageLower, false)
		if err != nil {
			return err
		}
		return diagfmt.FormatIR(a.stdout, res.Program, res.Sema.Types, f)
	}
	return cmd
}
