package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/minilisp"
	"github.com/ava12/minilisp/analyser"
	"github.com/ava12/minilisp/tree"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newParseCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print parse tree",
		Long: `Tokenizes and parses expression and prints its parse tree.

Formats:
  sexpr   - bracketed token list, e.g. [PLUS Number(2) Number(3)]
  json    - nested arrays of {"type", "value"} objects
  source  - expression text rebuilt from the tree
  dump    - Go structure dump

Examples:
  minilisp parse -e "(λ f (λ x (f x)))"
  minilisp parse --format json program.ml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = o.cfg.Format
			} else if !slices.Contains(formats, format) {
				return minilisp.FormatError(InvalidConfigError, "unknown format %q", format)
			}

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			root, err := analyser.Analyse(input)
			if err != nil {
				return err
			}

			return writeTree(cmd.OutOrStdout(), root, format)
		},
	}

	cmd.Flags().StringP("expr", "e", "", "expression to parse")
	cmd.Flags().StringVarP(&format, "format", "f", FormatSExpr, "output format: sexpr, json, source or dump")
	return cmd
}

func writeTree(w io.Writer, root tree.Node, format string) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(root)
	case FormatSource:
		_, err = fmt.Fprintln(w, tree.Render(root))
	case FormatDump:
		dumpConfig.Fdump(w, root)
	default:
		_, err = fmt.Fprintln(w, tree.Format(root))
	}
	return errors.Wrap(err, "writing parse tree")
}
