package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ember/internal/diagfmt"
	"ember/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.em",
		Short: "Print the tokens of a source file",
		Long:  `Tokenize prints one token per line as "line:col category text"`,
		Args:  cobra.ExactArgs(1),
	}
	format := cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	trivia := cmd.Flags().Bool("trivia", false, "keep comments and whitespace in json/msgpack output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		f, err := diagfmt.ParseFormat(*format)
		if err != nil {
			return err
		}
		res, err := a.compile(cmd.Context(), args[0], driver.StageLex, *trivia)
		if err != nil {
			return err
		}
		if err := diagfmt.FormatTokens(a.stdout, res.Tokens, res.FileSet, f); err != nil {
			return fmt.Errorf("failed to write tokens: %w", err)
		}
		return nil
	}
	return cmd
}
