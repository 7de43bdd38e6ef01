package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/ast"
	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] file.em",
		Short: "Type-check a source file",
		Long:  `Check prints the type of the program, or the first type error`,
		Args:  cobra.ExactArgs(1),
	}
	tree := cmd.Flags().Bool("tree", false, "print the syntax tree annotated with types")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		res, err := a.compile(cmd.Context(), args[0], driver.StageCheck, false)
		if err != nil {
			return err
		}
		if *tree {
			typeOf := func(id ast.ExprID) string { return res.Sema.Types.Name(res.Sema.TypeOf(id)) }
			return diagfmt.FormatASTPretty(a.stdout, res.Builder, res.Root, res.FileSet, typeOf)
		}
		_, err = fmt.Fprintln(a.stdout, res.Sema.Types.Name(res.Sema.Root))
		return err
	}
	return cmd
}
