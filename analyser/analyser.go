// Package analyser chains MiniLisp lexer and parser.
package analyser

import (
	"github.com/golang/glog"

	"github.com/ava12/minilisp/grammar"
	"github.com/ava12/minilisp/lexer"
	"github.com/ava12/minilisp/parser"
	"github.com/ava12/minilisp/tree"
)

// Analyser is immutable and safe for concurrent use.
type Analyser struct {
	parser *parser.Parser
}

type Option func(*config)

type config struct {
	table grammar.Table
}

// WithTable makes analyser use parsing table t instead of grammar.MiniLisp.
func WithTable(t grammar.Table) Option {
	return func(c *config) {
		c.table = t
	}
}

func New(opts ...Option) (*Analyser, error) {
	c := &config{table: grammar.MiniLisp}
	for _, opt := range opts {
		opt(c)
	}

	p, e := parser.New(c.table)
	if e != nil {
		return nil, e
	}

	return &Analyser{p}, nil
}

var defaultAnalyser = &Analyser{mustParser(parser.New(grammar.MiniLisp))}

func mustParser(p *parser.Parser, e error) *parser.Parser {
	if e != nil {
		panic(e)
	}
	return p
}

// Analyse tokenizes and parses input using MiniLisp grammar.
func Analyse(input string) (tree.Node, error) {
	return defaultAnalyser.Analyse(input)
}

// Analyse tokenizes and parses input. Returned error is always *minilisp.Error.
func (a *Analyser) Analyse(input string) (tree.Node, error) {
	tokens, e := lexer.Tokenize(input)
	if e != nil {
		glog.V(1).Infof("lexical error: %s", e)
		return nil, e
	}

	glog.V(1).Infof("tokenized %d bytes into %d tokens", len(input), len(tokens))
	if glog.V(2) {
		glog.Infof("tokens: %v", tokens)
	}

	root, e := a.parser.Parse(tokens)
	if e != nil {
		glog.V(1).Infof("syntax error: %s", e)
		return nil, e
	}

	if glog.V(2) {
		glog.Infof("parse tree: %s", tree.Format(root))
	}
	return root, nil
}
