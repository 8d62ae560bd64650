// Package parser defines table-driven predictive parser for MiniLisp.
//
// Parser keeps an explicit stack of grammar symbols instead of recursing.
// Tree nesting follows parenthesis nesting: an opening parenthesis starts
// a new sibling list, a closing one turns the list into a tree.List node.
package parser

import (
	"github.com/ava12/minilisp/grammar"
	"github.com/ava12/minilisp/lexer"
	"github.com/ava12/minilisp/tree"
)

// Parser is immutable and safe for concurrent use.
type Parser struct {
	table grammar.Table
}

// New creates a parser driven by table t. The table must not be modified afterwards.
func New(t grammar.Table) (*Parser, error) {
	e := t.Validate()
	if e != nil {
		return nil, e
	}

	return &Parser{t}, nil
}

var miniLisp = &Parser{grammar.MiniLisp}

// Parse parses tokens using MiniLisp grammar.
func Parse(tokens []*lexer.Token) (tree.Node, error) {
	return miniLisp.Parse(tokens)
}

// Parse builds parse tree for tokens. Returns nil and *minilisp.Error on the first syntax error.
// A single top-level node is returned as is, not wrapped in a list.
// A nil entry in tokens is a syntax error.
func (p *Parser) Parse(tokens []*lexer.Token) (tree.Node, error) {
	for i, t := range tokens {
		if t == nil {
			return nil, nilTokenError(i)
		}
	}

	pc := &parseContext{
		table:   p.table,
		tokens:  tokens,
		symbols: newStack(grammar.EndMarker, grammar.Program),
		lists:   newStack[[]tree.Node](nil),
	}
	return pc.parse()
}

type parseContext struct {
	table   grammar.Table
	tokens  []*lexer.Token
	index   int
	symbols *stack[grammar.Symbol]
	lists   *stack[[]tree.Node]
	depth   int
}

func (pc *parseContext) lookahead() (grammar.Symbol, tokenRef) {
	if pc.index >= len(pc.tokens) {
		return grammar.EndMarker, tokenRef{}
	}

	t := pc.tokens[pc.index]
	return grammar.Terminal(t.Kind()), tokenRef{t, pc.index}
}

func (pc *parseContext) parse() (tree.Node, error) {
	for !pc.symbols.IsEmpty() {
		var e error
		top := *pc.symbols.Top()
		la, tok := pc.lookahead()

		switch {
		case top == grammar.EndMarker:
			pc.symbols.Pop()
			if tok.Token != nil {
				if la == grammar.RParen {
					e = unmatchedParenError(tok)
				} else {
					e = trailingTokensError(tok)
				}
			}

		case top.IsTerminal():
			e = pc.match(top, la, tok)

		default:
			e = pc.expand(top, la, tok)
		}

		if e != nil {
			return nil, e
		}
	}

	return pc.result()
}

func (pc *parseContext) eoiError(expected string) error {
	if pc.depth > 0 {
		return missingParenError(pc.depth)
	}
	return unexpectedEoiError(expected)
}

func (pc *parseContext) match(top, la grammar.Symbol, tok tokenRef) error {
	if tok.Token == nil {
		return pc.eoiError(describeSymbol(top))
	}

	if top != la {
		if la == grammar.RParen && pc.depth == 0 {
			return unmatchedParenError(tok)
		}
		return unexpectedTokenError(tok, top)
	}

	pc.symbols.Pop()
	pc.index++

	switch tok.Kind() {
	case lexer.LParen:
		pc.depth++
		pc.lists.Push(nil)

	case lexer.RParen:
		pc.depth--
		if pc.depth < 0 || pc.lists.Len() < 2 {
			return unmatchedParenError(tok)
		}

		children := pc.lists.Pop()
		pc.appendNode(tree.NewList(children...))

	default:
		pc.appendNode(tree.NewLeaf(tok.Token))
	}

	return nil
}

func (pc *parseContext) expand(top, la grammar.Symbol, tok tokenRef) error {
	p, found := pc.table.Lookup(top, la)
	if !found {
		switch {
		case tok.Token == nil:
			return pc.eoiError(describeSymbol(top))
		case la == grammar.RParen && pc.depth == 0:
			return unmatchedParenError(tok)
		default:
			return noProductionError(tok, top, pc.table.Expected(top))
		}
	}

	pc.symbols.Pop()
	for i := len(p) - 1; i >= 0; i-- {
		pc.symbols.Push(p[i])
	}
	return nil
}

func (pc *parseContext) appendNode(n tree.Node) {
	siblings := pc.lists.Top()
	*siblings = append(*siblings, n)
}

func (pc *parseContext) result() (tree.Node, error) {
	if pc.depth != 0 || pc.lists.Len() != 1 {
		return nil, missingParenError(pc.depth)
	}

	root := pc.lists.Pop()
	if len(root) == 1 {
		return root[0], nil
	}
	return tree.NewList(root...), nil
}
