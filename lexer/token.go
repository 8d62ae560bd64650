package lexer

import (
	"strconv"
)

// Kind is the token type. The set of kinds is closed.
type Kind int

const (
	Number Kind = iota
	Identifier
	Plus
	Minus
	Mult
	Equals
	Conditional
	Lambda
	Let
	LParen
	RParen

	// NumKinds is the number of token kinds, not a kind itself.
	NumKinds
)

var kindNames = [NumKinds]string{
	Number:      "NUMBER",
	Identifier:  "IDENTIFIER",
	Plus:        "PLUS",
	Minus:       "MINUS",
	Mult:        "MULT",
	Equals:      "EQUALS",
	Conditional: "CONDITIONAL",
	Lambda:      "LAMBDA",
	Let:         "LET",
	LParen:      "LPAREN",
	RParen:      "RPAREN",
}

// glyphs contains canonical spelling of single-character tokens.
var glyphs = [NumKinds]string{
	Plus:        "+",
	Minus:       "−",
	Mult:        "×",
	Equals:      "=",
	Conditional: "?",
	Lambda:      "λ",
	Let:         "≜",
	LParen:      "(",
	RParen:      ")",
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Glyph returns canonical character for single-character token kinds or empty string.
func (k Kind) Glyph() string {
	if k < 0 || k >= NumKinds {
		return ""
	}
	return glyphs[k]
}

// HasPayload reports whether tokens of this kind carry a value (Number and Identifier do).
func (k Kind) HasPayload() bool {
	return k == Number || k == Identifier
}

// Token is an immutable lexeme.
type Token struct {
	kind   Kind
	number int
	text   string
	pos    int
}

func (t *Token) Kind() Kind {
	return t.kind
}

// Number returns the value of Number token or 0.
func (t *Token) Number() int {
	return t.number
}

// Text returns identifier name, number literal, or canonical glyph.
func (t *Token) Text() string {
	return t.text
}

// Pos returns 1-based token ordinal in its sequence or 0 for tokens created outside of lexer.
func (t *Token) Pos() int {
	return t.pos
}

func (t *Token) String() string {
	switch t.kind {
	case Number:
		return "Number(" + strconv.Itoa(t.number) + ")"
	case Identifier:
		return "Identifier(" + strconv.Quote(t.text) + ")"
	default:
		return t.kind.String()
	}
}

// Equal reports whether tokens have the same kind and, for Number and Identifier, the same payload.
// Positions are ignored.
func (t *Token) Equal(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind {
		return false
	}

	switch t.kind {
	case Number:
		return t.number == other.number
	case Identifier:
		return t.text == other.text
	default:
		return true
	}
}

// NewNumber creates Number token with no position.
func NewNumber(value int) *Token {
	return &Token{kind: Number, number: value, text: strconv.Itoa(value)}
}

// NewIdentifier creates Identifier token with no position.
func NewIdentifier(name string) *Token {
	return &Token{kind: Identifier, text: name}
}

// NewToken creates payload-less token of given kind with no position.
// Number and Identifier kinds get zero payloads, use NewNumber and NewIdentifier instead.
func NewToken(kind Kind) *Token {
	return &Token{kind: kind, text: kind.Glyph()}
}

func positioned(t *Token, pos int) *Token {
	t.pos = pos
	return t
}
