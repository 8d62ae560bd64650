package cmd

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ava12/minilisp/lexer"
)

func newTokensCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print token sequence",
		Long: `Tokenizes expression and prints one token per line
preceded by its 1-based position.

Examples:
  minilisp tokens -e "(≜ y 10 y)"
  minilisp tokens program.ml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(input)
			if err != nil {
				return err
			}

			glog.V(1).Infof("%d tokens", len(tokens))
			out := cmd.OutOrStdout()
			for _, t := range tokens {
				fmt.Fprintf(out, "%d\t%s\n", t.Pos(), t)
			}
			return nil
		},
	}

	cmd.Flags().StringP("expr", "e", "", "expression to tokenize")
	return cmd
}
