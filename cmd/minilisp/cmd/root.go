// Package cmd implements minilisp console commands.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/minilisp"
)

// Process exit codes:
const (
	ExitOK = iota
	ExitFailure
	ExitConfig
	ExitInvalidInput
)

type options struct {
	cfgFile string
	cfg     *Config
}

// NewRootCmd creates minilisp command tree with its own flag set.
func NewRootCmd() *cobra.Command {
	o := &options{cfg: defaultConfig()}

	root := &cobra.Command{
		Use:   "minilisp",
		Short: "MiniLisp lexer and parser",
		Long: `minilisp tokenizes and parses MiniLisp expressions.

Expressions use prefix notation with operators + − × = ? λ ≜,
subtraction is written with U+2212 minus sign.

Examples:
  minilisp tokens -e "(+ 2 3)"
  minilisp parse --format json program.ml
  echo "((λ x (+ x 1)) 5)" | minilisp parse
  minilisp check cases.yaml -o report.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load()
		},
	}

	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file, YAML or TOML")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newTokensCmd(o), newParseCmd(o), newCheckCmd(o))
	return root
}

func (o *options) load() error {
	if !flag.Parsed() {
		// glog values are already set through pflag
		if err := flag.CommandLine.Parse(nil); err != nil {
			return errors.Wrap(err, "parsing log flags")
		}
	}

	if o.cfgFile == "" {
		return nil
	}

	cfg, err := LoadConfig(o.cfgFile)
	if err != nil {
		return err
	}

	o.cfg = cfg
	glog.V(1).Infof("config loaded from %s: %+v", o.cfgFile, *cfg)
	return nil
}

// Execute runs minilisp command using process arguments and returns exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "minilisp:", err)
	}
	return ExitCode(err)
}

// ExitCode maps command error to process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var me *minilisp.Error
	if errors.As(err, &me) {
		switch me.Class() {
		case minilisp.ConfigErrors:
			return ExitConfig
		case minilisp.LexicalErrors, minilisp.SyntaxErrors:
			return ExitInvalidInput
		}
	}
	return ExitFailure
}

// readInput returns expression given with -e flag, contents of the file named by the first argument
// or standard input, in that order.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	exprFlag := cmd.Flags().Lookup("expr")
	if exprFlag != nil && exprFlag.Changed {
		if len(args) > 0 {
			return "", errors.New("both expression and input file given")
		}
		return exprFlag.Value.String(), nil
	}

	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.Wrap(err, "reading input file")
		}
		return string(content), nil
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "reading standard input")
	}
	return string(content), nil
}
