// Package grammar defines MiniLisp grammar symbols and the LL(1) parsing table.
//
//	<program>    ::= <expr>
//	<expr>       ::= NUMBER | IDENTIFIER | LPAREN <paren-expr> RPAREN
//	<paren-expr> ::= PLUS <expr> <expr>
//	               | MULT <expr> <expr>
//	               | EQUALS <expr> <expr>
//	               | MINUS <expr> <expr>
//	               | CONDITIONAL <expr> <expr> <expr>
//	               | LAMBDA IDENTIFIER <expr>
//	               | LET IDENTIFIER <expr> <expr>
//	               | <expr> <expr>*
//	<expr>*      ::= <expr> <expr>* | ε
package grammar

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ava12/minilisp"
	"github.com/ava12/minilisp/lexer"
)

// Symbol is either a terminal (token kind or EndMarker) or a non-terminal.
type Symbol int

// Terminals:
const (
	Number      = Symbol(lexer.Number)
	Identifier  = Symbol(lexer.Identifier)
	Plus        = Symbol(lexer.Plus)
	Minus       = Symbol(lexer.Minus)
	Mult        = Symbol(lexer.Mult)
	Equals      = Symbol(lexer.Equals)
	Conditional = Symbol(lexer.Conditional)
	Lambda      = Symbol(lexer.Lambda)
	Let         = Symbol(lexer.Let)
	LParen      = Symbol(lexer.LParen)
	RParen      = Symbol(lexer.RParen)

	// EndMarker is the lookahead after the last token.
	EndMarker = Symbol(lexer.NumKinds)
)

const firstNonTerm Symbol = 100

// Non-terminals:
const (
	Program Symbol = firstNonTerm + iota
	Expr
	ParenExpr
	ExprList
	lastNonTerm
)

var nonTermNames = [...]string{"<program>", "<expr>", "<paren-expr>", "<expr>*"}

// Terminal returns terminal symbol matching tokens of kind k.
func Terminal(k lexer.Kind) Symbol {
	return Symbol(k)
}

func (s Symbol) IsTerminal() bool {
	return s >= 0 && s <= EndMarker
}

func (s Symbol) IsNonTerm() bool {
	return s >= firstNonTerm && s < lastNonTerm
}

// Kind returns token kind of terminal symbol; false for EndMarker and non-terminals.
func (s Symbol) Kind() (lexer.Kind, bool) {
	if s >= 0 && s < EndMarker {
		return lexer.Kind(s), true
	}
	return 0, false
}

func (s Symbol) String() string {
	switch {
	case s == EndMarker:
		return "$"
	case s.IsTerminal():
		return lexer.Kind(s).String()
	case s.IsNonTerm():
		return nonTermNames[s-firstNonTerm]
	default:
		return "Symbol(" + strconv.Itoa(int(s)) + ")"
	}
}

// Production is an ordered list of symbols, empty production is ε.
type Production []Symbol

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}

	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}

// Table maps (non-terminal, lookahead terminal) pair to production.
// Tables are never modified after construction and are safe for concurrent use.
type Table map[Symbol]map[Symbol]Production

// Lookup returns production for non-terminal nt and lookahead terminal.
func (t Table) Lookup(nt, lookahead Symbol) (Production, bool) {
	p, found := t[nt][lookahead]
	return p, found
}

// Expected returns sorted list of lookahead terminals having a production for nt.
func (t Table) Expected(nt Symbol) []Symbol {
	row := t[nt]
	res := make([]Symbol, 0, len(row))
	for s := range row {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

// Error codes used by Validate:
const (
	NoRootError = minilisp.GrammarErrors + iota
	UnknownSymbolError
	UndefinedNonTermError
	LookaheadMismatchError
	LeftRecursionError
)

// Validate checks that the table is usable by a predictive parser:
// Program row exists, every non-terminal used in productions has a row,
// every production starting with a terminal is filed under that terminal,
// and no chain of expansions returns to the same non-terminal without consuming a token.
func (t Table) Validate() error {
	if len(t[Program]) == 0 {
		return minilisp.FormatError(NoRootError, "no productions for %s", Program)
	}

	nts := make([]Symbol, 0, len(t))
	for nt := range t {
		nts = append(nts, nt)
	}
	sort.Slice(nts, func(i, j int) bool {
		return nts[i] < nts[j]
	})

	for _, nt := range nts {
		if !nt.IsNonTerm() {
			return minilisp.FormatError(UnknownSymbolError, "%s is not a non-terminal", nt)
		}

		for _, la := range t.Expected(nt) {
			if !la.IsTerminal() {
				return minilisp.FormatError(UnknownSymbolError, "%s: %s is not a terminal", nt, la)
			}

			p := t[nt][la]
			for _, s := range p {
				if s.IsNonTerm() {
					if len(t[s]) == 0 {
						return minilisp.FormatError(UndefinedNonTermError, "%s: no productions for %s", nt, s)
					}
				} else if !s.IsTerminal() || s == EndMarker {
					return minilisp.FormatError(UnknownSymbolError, "%s: unexpected %s in production %s", nt, s, p)
				}
			}

			if len(p) > 0 && p[0].IsTerminal() && p[0] != la {
				return minilisp.FormatError(LookaheadMismatchError, "%s: production %s filed under %s", nt, p, la)
			}
		}
	}

	return t.checkRecursion(nts)
}

// cell is a (non-terminal, lookahead) pair, the unit of parser expansion.
type cell struct {
	nt, la Symbol
}

// nullable returns cells whose production derives ε without consuming the lookahead.
func (t Table) nullable() map[cell]bool {
	res := make(map[cell]bool)
	for changed := true; changed; {
		changed = false
		for nt, row := range t {
			for la, p := range row {
				c := cell{nt, la}
				if res[c] {
					continue
				}

				empty := true
				for _, s := range p {
					if !s.IsNonTerm() || !res[cell{s, la}] {
						empty = false
						break
					}
				}
				if empty {
					res[c] = true
					changed = true
				}
			}
		}
	}
	return res
}

// next returns cells expanded on the same lookahead right after c,
// leading non-terminals are followed past the ones deriving ε.
func (t Table) next(c cell, nullable map[cell]bool) []cell {
	var res []cell
	for _, s := range t[c.nt][c.la] {
		if !s.IsNonTerm() {
			break
		}

		nc := cell{s, c.la}
		if _, found := t[s][c.la]; !found {
			break
		}
		res = append(res, nc)
		if !nullable[nc] {
			break
		}
	}
	return res
}

func (t Table) checkRecursion(nts []Symbol) error {
	const (
		unvisited = iota
		inPath
		done
	)

	nullable := t.nullable()
	marks := make(map[cell]int)
	var path []Symbol

	var visit func(c cell) error
	visit = func(c cell) error {
		switch marks[c] {
		case done:
			return nil
		case inPath:
			names := make([]string, 0, len(path)+1)
			for _, s := range append(path, c.nt) {
				names = append(names, s.String())
			}
			return minilisp.FormatError(LeftRecursionError, "left recursion on %s: %s", c.la, strings.Join(names, " -> "))
		}

		marks[c] = inPath
		path = append(path, c.nt)
		for _, nc := range t.next(c, nullable) {
			if e := visit(nc); e != nil {
				return e
			}
		}
		path = path[:len(path)-1]
		marks[c] = done
		return nil
	}

	for _, nt := range nts {
		for _, la := range t.Expected(nt) {
			if e := visit(cell{nt, la}); e != nil {
				return e
			}
		}
	}
	return nil
}

func applications() map[Symbol]Production {
	res := make(map[Symbol]Production)
	for _, la := range []Symbol{Number, Identifier, LParen} {
		res[la] = Production{Expr, ExprList}
	}
	return res
}

func makeMiniLisp() Table {
	parenExpr := applications()
	parenExpr[Plus] = Production{Plus, Expr, Expr}
	parenExpr[Mult] = Production{Mult, Expr, Expr}
	parenExpr[Equals] = Production{Equals, Expr, Expr}
	parenExpr[Minus] = Production{Minus, Expr, Expr}
	parenExpr[Conditional] = Production{Conditional, Expr, Expr, Expr}
	parenExpr[Lambda] = Production{Lambda, Identifier, Expr}
	parenExpr[Let] = Production{Let, Identifier, Expr, Expr}

	exprList := applications()
	exprList[RParen] = Production{}

	return Table{
		Program: {
			Number:     {Expr},
			Identifier: {Expr},
			LParen:     {Expr},
		},
		Expr: {
			Number:     {Number},
			Identifier: {Identifier},
			LParen:     {LParen, ParenExpr, RParen},
		},
		ParenExpr: parenExpr,
		ExprList:  exprList,
	}
}

// MiniLisp is the parsing table for MiniLisp grammar.
var MiniLisp = makeMiniLisp()
