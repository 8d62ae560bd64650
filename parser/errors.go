package parser

import (
	"strconv"
	"strings"

	"github.com/ava12/minilisp"
	"github.com/ava12/minilisp/grammar"
	"github.com/ava12/minilisp/lexer"
)

// tokenRef reports position of token in the sequence being parsed,
// tokens created outside of lexer have no position of their own.
type tokenRef struct {
	*lexer.Token
	index int
}

func (r tokenRef) Pos() int {
	return r.index + 1
}

// Error codes used by parser:
const (
	UnexpectedEoiError = minilisp.SyntaxErrors + iota
	UnexpectedTokenError
	NoProductionError
	UnmatchedParenError
	MissingParenError
	TrailingTokensError
	NilTokenError
)

func describeToken(t *lexer.Token) string {
	switch t.Kind() {
	case lexer.Number:
		return "number " + strconv.Itoa(t.Number())
	case lexer.Identifier:
		return "identifier " + strconv.Quote(t.Text())
	default:
		return strconv.Quote(t.Kind().Glyph())
	}
}

func describeSymbol(s grammar.Symbol) string {
	if s == grammar.EndMarker {
		return "end of input"
	}

	k, isKind := s.Kind()
	switch {
	case !isKind:
		return s.String()
	case k.HasPayload():
		return strings.ToLower(k.String())
	default:
		return strconv.Quote(k.Glyph())
	}
}

func describeSymbols(ss []grammar.Symbol) string {
	if len(ss) == 0 {
		return "nothing"
	}

	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = describeSymbol(s)
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

func unexpectedEoiError(expected string) *minilisp.Error {
	return minilisp.FormatError(UnexpectedEoiError, "unexpected end of input, expecting %s", expected)
}

func unexpectedTokenError(t tokenRef, expected grammar.Symbol) *minilisp.Error {
	if expected == grammar.RParen {
		return minilisp.FormatErrorPos(t, UnexpectedTokenError, "missing closing parenthesis: expecting \")\", got %s", describeToken(t.Token))
	}
	return minilisp.FormatErrorPos(t, UnexpectedTokenError, "unexpected %s, expecting %s", describeToken(t.Token), describeSymbol(expected))
}

func noProductionError(t tokenRef, nt grammar.Symbol, expected []grammar.Symbol) *minilisp.Error {
	return minilisp.FormatErrorPos(t, NoProductionError, "unexpected %s in %s, expecting %s", describeToken(t.Token), nt, describeSymbols(expected))
}

func unmatchedParenError(t tokenRef) *minilisp.Error {
	return minilisp.FormatErrorPos(t, UnmatchedParenError, "unmatched closing parenthesis")
}

func missingParenError(count int) *minilisp.Error {
	noun := "parenthesis"
	if count > 1 {
		noun = "parentheses"
	}
	return minilisp.FormatError(MissingParenError, "missing %d closing %s at end of input", count, noun)
}

func trailingTokensError(t tokenRef) *minilisp.Error {
	return minilisp.FormatErrorPos(t, TrailingTokensError, "unexpected %s after the end of expression", describeToken(t.Token))
}

func nilTokenError(index int) *minilisp.Error {
	return minilisp.FormatErrorPos(tokenRef{nil, index}, NilTokenError, "nil token in sequence")
}
