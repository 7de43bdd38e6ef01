package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.em",
		Short: "Print the syntax tree of a source file",
		Long:  `Parse prints the AST as an s-expression, e.g. BinaryOp(+, 1, BinaryOp(*, 2, 3))`,
		Args:  cobra.ExactArgs(1),
	}
	format := cmd.Flags().String("format", "sexpr", "output format (sexpr|tree|json)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch *format {
		case "sexpr", "tree", "json":
		default:
			return fmt.Errorf("unknown format %q (want sexpr, tree or json)", *format)
		}
		res, err := a.compile(cmd.Context(), args[0], driver.StageParse, false)
		if err != nil {
			return err
		}
		switch *format {
		case "tree":
			return diagfmt.FormatASTPretty(a.stdout, res.Builder, res.Root, res.FileSet, nil)
		case "json":
			return diagfmt.FormatASTJSON(a.stdout, res.Builder, res.Root, nil)
		default:
			_, err = fmt.Fprintln(a.stdout, diagfmt.FormatExpr(res.Builder, res.Root))
			return err
		}
	}
	return cmd
}
