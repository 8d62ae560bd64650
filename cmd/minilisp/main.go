/*
minilisp is a console front end for MiniLisp lexer and parser.
Usage is

	minilisp tokens [-e <expr> | <file>]
	minilisp parse [-e <expr> | <file>] [--format sexpr|json|source|dump]
	minilisp check [<cases-file>] [-o <report-file>]

Expression is read from standard input if neither -e flag nor file is given.
Global --config flag names YAML or TOML file with default flag values;
glog flags (-v, --logtostderr, etc.) are accepted too.
*/
package main

import (
	"os"

	"github.com/golang/glog"

	"github.com/ava12/minilisp/cmd/minilisp/cmd"
)

func main() {
	code := cmd.Execute()
	glog.Flush()
	os.Exit(code)
}
