// Package tree defines MiniLisp parse tree and functions to traverse, compare, and render it.
//
// A parse tree node is either a Leaf holding a single token or a List holding
// the nodes of one parenthesized group. Parentheses themselves are not stored.
package tree

import (
	"strconv"
	"strings"

	"github.com/ava12/minilisp/lexer"
)

// Node is either *Leaf or *List, no other implementations exist.
type Node interface {
	// IsList reports whether the node is *List.
	IsList() bool

	// Token returns leaf token or nil for lists.
	Token() *lexer.Token

	// Children returns list children or nil for leaves. Returned slice must not be modified.
	Children() []Node

	node()
}

type Leaf struct {
	token *lexer.Token
}

func NewLeaf(t *lexer.Token) *Leaf {
	return &Leaf{t}
}

func (l *Leaf) IsList() bool {
	return false
}

func (l *Leaf) Token() *lexer.Token {
	return l.token
}

func (l *Leaf) Children() []Node {
	return nil
}

func (l *Leaf) node() {}

func (l *Leaf) String() string {
	return l.token.String()
}

type List struct {
	children []Node
}

// NewList creates a list node, children slice is used as is.
func NewList(children ...Node) *List {
	return &List{children}
}

func (l *List) IsList() bool {
	return true
}

func (l *List) Token() *lexer.Token {
	return nil
}

func (l *List) Children() []Node {
	return l.children
}

func (l *List) node() {}

func (l *List) Len() int {
	return len(l.children)
}

func (l *List) String() string {
	return Format(l)
}

// NthChild returns i-th child of a list, negative index counts from the end (-1 is the last child).
// Returns nil if there is no such child or n is not a list.
func NthChild(n Node, i int) Node {
	if n == nil {
		return nil
	}

	cs := n.Children()
	if i < 0 {
		i += len(cs)
	}
	if i < 0 || i >= len(cs) {
		return nil
	}
	return cs[i]
}

const AllLevels = -1

// NumOfChildren counts descendants of n down to given depth (0 means direct children only).
func NumOfChildren(n Node, levels int) int {
	if n == nil {
		return 0
	}

	res := 0
	for _, c := range n.Children() {
		res++
		if levels != 0 {
			res += NumOfChildren(c, levels-1)
		}
	}
	return res
}

// WalkMode defines order of sibling visiting.
type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// WalkerFlags are returned by visitor to control walking.
type WalkerFlags int

const (
	// WalkerSkipChildren prevents visiting children of current list.
	WalkerSkipChildren WalkerFlags = 1 << iota

	// WalkerStop stops walking.
	WalkerStop
)

// WalkStat describes visited node.
type WalkStat struct {
	Node Node

	// Level is 0 for walk root.
	Level int

	// Index is node index among its siblings, 0 for walk root.
	Index int

	// Exit is set when visitor is called after all children of a list are visited.
	// The value returned for exit calls is ignored unless it contains WalkerStop.
	Exit bool
}

type walkRec struct {
	stat WalkStat
	next int
}

// Walk visits n and its descendants depth first. Each list is visited twice: before its children
// and after them (with stat.Exit set), unless visitor requests skipping the children.
// Walk uses explicit stack, so tree depth is not limited by goroutine stack.
func Walk(n Node, mode WalkMode, visitor func(stat WalkStat) WalkerFlags) {
	if n == nil {
		return
	}

	rtl := (mode&WalkRtl != 0)
	stack := []walkRec{{stat: WalkStat{Node: n}}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		cs := top.stat.Node.Children()

		if top.next == 0 {
			flags := visitor(top.stat)
			if flags&WalkerStop != 0 {
				return
			}
			if !top.stat.Node.IsList() || flags&WalkerSkipChildren != 0 {
				stack = stack[:len(stack)-1]
				continue
			}
		}

		if top.next >= len(cs) {
			stat := top.stat
			stat.Exit = true
			stack = stack[:len(stack)-1]
			if visitor(stat)&WalkerStop != 0 {
				return
			}
			continue
		}

		i := top.next
		if rtl {
			i = len(cs) - 1 - i
		}
		top.next++
		stack = append(stack, walkRec{stat: WalkStat{Node: cs[i], Level: top.stat.Level + 1, Index: i}})
	}
}

// Leaves returns leaf tokens of n in order.
func Leaves(n Node) []*lexer.Token {
	var res []*lexer.Token
	Walk(n, WalkLtr, func(stat WalkStat) WalkerFlags {
		if !stat.Node.IsList() {
			res = append(res, stat.Node.Token())
		}
		return 0
	})
	return res
}

// FirstLeaf returns the leftmost leaf of n or nil if n contains no leaves.
func FirstLeaf(n Node) *Leaf {
	return findLeaf(n, WalkLtr)
}

// LastLeaf returns the rightmost leaf of n or nil if n contains no leaves.
func LastLeaf(n Node) *Leaf {
	return findLeaf(n, WalkRtl)
}

func findLeaf(n Node, mode WalkMode) (res *Leaf) {
	Walk(n, mode, func(stat WalkStat) WalkerFlags {
		l, isLeaf := stat.Node.(*Leaf)
		if isLeaf {
			res = l
			return WalkerStop
		}
		return 0
	})
	return
}

// Equal reports whether trees have the same shape and equal leaf tokens (see lexer.Token.Equal).
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	type pair struct{ a, b Node }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a.IsList() != p.b.IsList() {
			return false
		}

		if !p.a.IsList() {
			if !p.a.Token().Equal(p.b.Token()) {
				return false
			}
			continue
		}

		ac, bc := p.a.Children(), p.b.Children()
		if len(ac) != len(bc) {
			return false
		}
		for i := range ac {
			stack = append(stack, pair{ac[i], bc[i]})
		}
	}
	return true
}

// TokenSource returns MiniLisp source text of a single token:
// literal for numbers and identifiers, canonical glyph for other tokens.
func TokenSource(t *lexer.Token) string {
	switch t.Kind() {
	case lexer.Number:
		return strconv.Itoa(t.Number())
	case lexer.Identifier:
		return t.Text()
	default:
		return t.Kind().Glyph()
	}
}

// Render returns MiniLisp source text that is parsed to a tree equal to n.
func Render(n Node) string {
	return write(n, "(", ")", TokenSource)
}

// Format returns debug representation of n, e.g. "[PLUS Number(2) Number(3)]".
func Format(n Node) string {
	return write(n, "[", "]", (*lexer.Token).String)
}

func write(n Node, open, close string, leaf func(*lexer.Token) string) string {
	sb := &strings.Builder{}
	Walk(n, WalkLtr, func(stat WalkStat) WalkerFlags {
		if stat.Exit {
			sb.WriteString(close)
			return 0
		}

		if stat.Index > 0 {
			sb.WriteByte(' ')
		}
		if stat.Node.IsList() {
			sb.WriteString(open)
		} else {
			sb.WriteString(leaf(stat.Node.Token()))
		}
		return 0
	})
	return sb.String()
}
