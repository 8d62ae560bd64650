package tree

import (
	"encoding/json"

	"github.com/ava12/minilisp/lexer"
)

type jsonToken struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// MarshalJSON encodes a leaf as {"type": "NUMBER", "value": 42};
// operators and parentheses have their glyph as value.
func (l *Leaf) MarshalJSON() ([]byte, error) {
	t := l.token
	var value any
	switch t.Kind() {
	case lexer.Number:
		value = t.Number()
	case lexer.Identifier:
		value = t.Text()
	default:
		value = t.Kind().Glyph()
	}
	return json.Marshal(jsonToken{t.Kind().String(), value})
}

// MarshalJSON encodes a list as an array of its children.
func (l *List) MarshalJSON() ([]byte, error) {
	cs := l.children
	if cs == nil {
		cs = []Node{}
	}
	return json.Marshal(cs)
}
