/*
Package minilisp is a front end for MiniLisp, a tiny parenthesized expression language.

Consists of subpackages:
  - lexer: token model and deterministic finite automaton tokenizer;
  - grammar: grammar symbols and the fixed LL(1) parsing table;
  - parser: table-driven predictive parser building nested parse trees;
  - tree: parse tree node types, traversal, comparison, and rendering;
  - analyser: tokenizer and parser chained together;
  - report: case files and JSON test reports;
  - cmd/minilisp: command line front end.

Typical usage is:

	root, e := analyser.Analyse("(+ 2 (× x 3))")

Both stages fail on the first error, the error is always *Error.
Error code class tells lexical errors from syntax errors.
*/
package minilisp

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors = 101 // used by lexer
	SyntaxErrors  = 201 // used by parser
	GrammarErrors = 301 // used by grammar table validation
	ConfigErrors  = 401 // used by command line configuration
)

// Error is the error type used by minilisp subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including position information if provided.
	Message string

	// Pos contains 1-based token ordinal or 0.
	Pos int
}

// TokenPos is used to retrieve position information when constructing an error;
// lexer.Token implements this interface.
type TokenPos interface {
	// Pos returns 1-based token ordinal or 0.
	Pos() int
}

// NewError creates new Error structure.
// pos will be added to error message if provided (non-zero).
func NewError(code int, msg string, pos int) *Error {
	if pos != 0 {
		msg += fmt.Sprintf(" at token %d", pos)
	}
	return &Error{code, msg, pos}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// Class returns error class (LexicalErrors, SyntaxErrors, etc.) of error code.
func (e *Error) Class() int {
	return (e.Code-1)/100*100 + 1
}

// IsLexical reports whether the error was produced by lexer.
func (e *Error) IsLexical() bool {
	return e.Class() == LexicalErrors
}

// IsSyntax reports whether the error was produced by parser.
func (e *Error) IsSyntax() bool {
	return e.Class() == SyntaxErrors
}

// FormatError creates Error structure with no position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, 0)
}

// FormatErrorPos creates Error structure with position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos TokenPos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.Pos())
}
