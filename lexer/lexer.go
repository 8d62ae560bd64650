// Package lexer defines MiniLisp tokens and the tokenizer.
//
// Tokenizer is a deterministic finite automaton. Every input character is mapped
// to a character class by the alphabet, then (state, class) pair is mapped to the
// next state by the transition table. Both tables are built once and never modified,
// so Tokenize is safe for concurrent use.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/minilisp"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates a character outside of the alphabet.
	// Error message contains the character.
	WrongCharError = minilisp.LexicalErrors + iota

	// WrongTransitionError indicates a valid character that cannot follow the current lexeme,
	// e.g. a digit in identifier or a letter in number.
	WrongTransitionError

	// EmptyInputError indicates that input is empty or contains only whitespace.
	EmptyInputError

	// NumberRangeError indicates a number literal that does not fit into int.
	NumberRangeError
)

// State is the automaton state.
type State int

const (
	StartOrSpace State = iota
	InNumber
	InIdentifier
	InSingleChar

	// Error is the sink state, once reached the whole input is rejected.
	Error

	numStates
)

var stateNames = [numStates]string{"start", "number", "identifier", "single-char", "error"}

func (s State) String() string {
	if s < 0 || s >= numStates {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

type charClass int

const (
	digitClass charClass = iota
	letterClass
	glyphClass
	spaceClass
	numClasses
)

const (
	digitChars  = "0123456789"
	letterChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	spaceChars  = " \t\n\r"
)

var (
	alphabet    = makeAlphabet()
	glyphKinds  = makeGlyphKinds()
	transitions = makeTransitions()
)

func makeGlyphKinds() map[rune]Kind {
	res := make(map[rune]Kind)
	for k := Kind(0); k < NumKinds; k++ {
		g := k.Glyph()
		if g != "" {
			r, _ := utf8.DecodeRuneInString(g)
			res[r] = k
		}
	}
	return res
}

func makeAlphabet() map[rune]charClass {
	res := make(map[rune]charClass)
	add := func(chars string, class charClass) {
		for _, r := range chars {
			res[r] = class
		}
	}
	add(digitChars, digitClass)
	add(letterChars, letterClass)
	add(spaceChars, spaceClass)
	for k := Kind(0); k < NumKinds; k++ {
		add(k.Glyph(), glyphClass)
	}
	return res
}

func makeTransitions() (ts [numStates][numClasses]State) {
	for s := range ts {
		for c := range ts[s] {
			ts[s][c] = Error
		}
	}

	for _, s := range []State{StartOrSpace, InNumber, InIdentifier, InSingleChar} {
		ts[s][digitClass] = InNumber
		ts[s][letterClass] = InIdentifier
		ts[s][glyphClass] = InSingleChar
		ts[s][spaceClass] = StartOrSpace
	}

	// numbers and identifiers cannot share characters
	ts[InIdentifier][digitClass] = Error
	ts[InNumber][letterClass] = Error
	return
}

// InAlphabet reports whether r may appear in MiniLisp source.
func InAlphabet(r rune) bool {
	_, found := alphabet[r]
	return found
}

// Transition returns the state automaton moves to from state s on character r.
// Returns Error for characters outside of the alphabet and for the Error state.
func Transition(s State, r rune) State {
	class, found := alphabet[r]
	if !found || s < 0 || s >= numStates {
		return Error
	}
	return transitions[s][class]
}

func wrongCharError(r rune) *minilisp.Error {
	return minilisp.FormatError(WrongCharError, "character '%c' (U+%04X) is not in the alphabet", r, r)
}

func wrongTransitionError(s State, r rune) *minilisp.Error {
	return minilisp.FormatError(WrongTransitionError, "invalid transition from %s state on character '%c'", s, r)
}

func emptyInputError() *minilisp.Error {
	return minilisp.FormatError(EmptyInputError, "empty input, expecting an expression")
}

func numberRangeError(text string) *minilisp.Error {
	return minilisp.FormatError(NumberRangeError, "number %s is out of range", text)
}

func isSpace(r rune) bool {
	return strings.ContainsRune(spaceChars, r)
}

type scanner struct {
	tokens []*Token
	buffer strings.Builder
}

func (s *scanner) emit(t *Token) {
	s.tokens = append(s.tokens, positioned(t, len(s.tokens)+1))
}

func (s *scanner) flush(state State) error {
	if s.buffer.Len() == 0 {
		return nil
	}

	text := s.buffer.String()
	s.buffer.Reset()
	switch state {
	case InNumber:
		n, e := strconv.Atoi(text)
		if e != nil {
			return numberRangeError(text)
		}
		s.emit(&Token{kind: Number, number: n, text: text})
	case InIdentifier:
		s.emit(&Token{kind: Identifier, text: text})
	}
	return nil
}

// Tokenize converts input to token sequence.
// Returns nil and *minilisp.Error on first lexical error, partial sequences are never returned.
func Tokenize(input string) ([]*Token, error) {
	if strings.TrimFunc(input, isSpace) == "" {
		return nil, emptyInputError()
	}

	s := &scanner{}
	state := StartOrSpace
	for _, r := range input {
		class, found := alphabet[r]
		if !found {
			return nil, wrongCharError(r)
		}

		next := transitions[state][class]
		if next == Error {
			return nil, wrongTransitionError(state, r)
		}

		if next != state {
			e := s.flush(state)
			if e != nil {
				return nil, e
			}
		}

		state = next
		switch state {
		case InSingleChar:
			s.emit(NewToken(glyphKinds[r]))
		case InNumber, InIdentifier:
			s.buffer.WriteRune(r)
		}
	}

	e := s.flush(state)
	if e != nil {
		return nil, e
	}

	return s.tokens, nil
}
