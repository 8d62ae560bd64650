package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/minilisp/grammar"
	"github.com/ava12/minilisp/internal/test"
	"github.com/ava12/minilisp/lexer"
	"github.com/ava12/minilisp/tree"
)

var nodeComparer = cmp.Comparer(tree.Equal)

func num(n int) tree.Node {
	return tree.NewLeaf(lexer.NewNumber(n))
}

func id(name string) tree.Node {
	return tree.NewLeaf(lexer.NewIdentifier(name))
}

func op(k lexer.Kind) tree.Node {
	return tree.NewLeaf(lexer.NewToken(k))
}

func list(ns ...tree.Node) tree.Node {
	return tree.NewList(ns...)
}

func parseString(t *testing.T, src string) (tree.Node, error) {
	t.Helper()
	tokens, e := lexer.Tokenize(src)
	require.NoError(t, e, "source %q", src)
	return Parse(tokens)
}

type srcTreeSample struct {
	src      string
	expected tree.Node
}

func TestValidSamples(t *testing.T) {
	samples := []srcTreeSample{
		{"42", num(42)},
		{"x", id("x")},
		{"(+ 2 3)", list(op(lexer.Plus), num(2), num(3))},
		{"(× x 5)", list(op(lexer.Mult), id("x"), num(5))},
		{"(+ (× 2 3) 4)", list(op(lexer.Plus), list(op(lexer.Mult), num(2), num(3)), num(4))},
		{"(? (= x 0) 1 0)", list(op(lexer.Conditional), list(op(lexer.Equals), id("x"), num(0)), num(1), num(0))},
		{"(λ x x)", list(op(lexer.Lambda), id("x"), id("x"))},
		{"(≜ y 10 y)", list(op(lexer.Let), id("y"), num(10), id("y"))},
		{"((λ x (+ x 1)) 5)", list(list(op(lexer.Lambda), id("x"), list(op(lexer.Plus), id("x"), num(1))), num(5))},
		{"(× (+ 1 2) (− 5 3))", list(op(lexer.Mult), list(op(lexer.Plus), num(1), num(2)), list(op(lexer.Minus), num(5), num(3)))},
		{"(λ f (λ x (f x)))", list(op(lexer.Lambda), id("f"), list(op(lexer.Lambda), id("x"), list(id("f"), id("x"))))},
		{"(− 7 2)", list(op(lexer.Minus), num(7), num(2))},
		{"(f)", list(id("f"))},
		{"(1 2 3 4)", list(num(1), num(2), num(3), num(4))},
		{"((f))", list(list(id("f")))},
	}

	for i, s := range samples {
		got, e := parseString(t, s.src)
		require.NoError(t, e, "sample #%d (%s)", i, s.src)
		if diff := cmp.Diff(s.expected, got, nodeComparer); diff != "" {
			t.Errorf("sample #%d (%s): expecting %s, got %s", i, s.src, tree.Format(s.expected), tree.Format(got))
		}
	}
}

func TestUnwrappedRoot(t *testing.T) {
	got, e := parseString(t, "42")
	require.NoError(t, e)
	leaf, isLeaf := got.(*tree.Leaf)
	require.True(t, isLeaf, "expecting *tree.Leaf, got %T", got)
	assert.Equal(t, 42, leaf.Token().Number())

	got, e = parseString(t, "(+ 2 3)")
	require.NoError(t, e)
	assert.Equal(t, "[PLUS Number(2) Number(3)]", tree.Format(got))
}

type srcErrSample struct {
	src      string
	err      int
	contains string
}

func TestErrors(t *testing.T) {
	samples := []srcErrSample{
		{"(+ 1)", NoProductionError, `unexpected ")" in <expr>`},
		{"(+ 1 2 3)", UnexpectedTokenError, "missing closing parenthesis"},
		{"(? 1 2)", NoProductionError, `unexpected ")"`},
		{")", UnmatchedParenError, "unmatched closing parenthesis at token 1"},
		{"(+ 1 2))", UnmatchedParenError, "at token 6"},
		{"((λ x (+ x 1)) 5", MissingParenError, "missing 1 closing parenthesis"},
		{"((+ 1", MissingParenError, "missing 2 closing parentheses"},
		{"(+ 1 2", MissingParenError, "missing 1"},
		{"(", MissingParenError, "missing 1"},
		{"(λ 1 x)", UnexpectedTokenError, "unexpected number 1, expecting identifier"},
		{"(≜ (x) 1 x)", UnexpectedTokenError, `unexpected "(", expecting identifier`},
		{"(+)", NoProductionError, "<expr>"},
		{"()", NoProductionError, "<paren-expr>"},
		{"(x +)", NoProductionError, "<expr>*"},
		{"42 43", TrailingTokensError, "number 43"},
		{"x (+ 1 2)", TrailingTokensError, `"("`},
		{"+", NoProductionError, "<program>"},
	}

	for i, s := range samples {
		got, e := parseString(t, s.src)
		assert.Nil(t, got, "sample #%d (%s)", i, s.src)
		ee := test.ExpectErrorCode(t, s.err, e)
		assert.True(t, ee.IsSyntax())
		assert.Contains(t, ee.Message, s.contains, "sample #%d (%s)", i, s.src)
	}
}

func TestEmptyTokenSequence(t *testing.T) {
	_, e := Parse(nil)
	ee := test.ExpectErrorCode(t, UnexpectedEoiError, e)
	assert.Contains(t, ee.Message, "<program>")
}

func TestNilTokens(t *testing.T) {
	samples := [][]*lexer.Token{
		{nil},
		{lexer.NewToken(lexer.LParen), lexer.NewToken(lexer.Plus), nil, lexer.NewNumber(1), lexer.NewToken(lexer.RParen)},
		{lexer.NewNumber(1), nil},
	}
	positions := []int{1, 3, 2}

	for i, tokens := range samples {
		got, e := Parse(tokens)
		assert.Nil(t, got, "sample #%d", i)
		ee := test.ExpectErrorCode(t, NilTokenError, e)
		assert.True(t, ee.IsSyntax())
		assert.Equal(t, positions[i], ee.Pos, "sample #%d", i)
	}
}

func TestErrorPosition(t *testing.T) {
	_, e := parseString(t, "(+ 1 2 3)")
	ee := test.ExpectErrorCode(t, UnexpectedTokenError, e)
	assert.Equal(t, 5, ee.Pos)

	tokens := []*lexer.Token{lexer.NewToken(lexer.LParen), lexer.NewToken(lexer.Plus), lexer.NewToken(lexer.RParen)}
	_, e = Parse(tokens)
	ee = test.ExpectErrorCode(t, NoProductionError, e)
	assert.Equal(t, 3, ee.Pos)
}

func TestHandMadeTokens(t *testing.T) {
	tokens := []*lexer.Token{
		lexer.NewToken(lexer.LParen),
		lexer.NewToken(lexer.Let),
		lexer.NewIdentifier("n"),
		lexer.NewNumber(3),
		lexer.NewIdentifier("n"),
		lexer.NewToken(lexer.RParen),
	}
	got, e := Parse(tokens)
	require.NoError(t, e)
	assert.True(t, tree.Equal(list(op(lexer.Let), id("n"), num(3), id("n")), got))
}

func TestLeavesFollowTokens(t *testing.T) {
	sources := []string{
		"42",
		"(+ (× 2 3) 4)",
		"((λ x (+ x 1)) 5)",
		"(λ f (λ x (f x)))",
		"(g 1 (h 2 3) (≜ z 4 (? (= z 4) z 0)))",
	}

	for _, src := range sources {
		tokens, e := lexer.Tokenize(src)
		require.NoError(t, e)
		root, e := Parse(tokens)
		require.NoError(t, e)

		var expected []*lexer.Token
		for _, tok := range tokens {
			if tok.Kind() != lexer.LParen && tok.Kind() != lexer.RParen {
				expected = append(expected, tok)
			}
		}
		leaves := tree.Leaves(root)
		require.Len(t, leaves, len(expected), "source %q", src)
		for i := range leaves {
			assert.Same(t, expected[i], leaves[i], "source %q, leaf #%d", src, i)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"x",
		"(× (+ 1 2) (− 5 3))",
		"( ≜  y\n10\ty )",
		"((λ x (+ x 1)) 5)",
		"(f a b c d e)",
	}

	for _, src := range sources {
		first, e := parseString(t, src)
		require.NoError(t, e)
		rendered := tree.Render(first)
		second, e := parseString(t, rendered)
		require.NoError(t, e, "rendered %q", rendered)
		assert.True(t, tree.Equal(first, second), "source %q, rendered %q", src, rendered)
	}
}

func TestWhitespaceInsensitivity(t *testing.T) {
	base, e := parseString(t, "((λ x (+ x 1)) 5)")
	require.NoError(t, e)

	variants := []string{
		"(\n(λ   x   (+  x    1))\t  5\n)",
		"  ((λ x(+ x 1))5)  ",
		"(\r\n(\r\nλ\r\nx\r\n(\r\n+\r\nx\r\n1\r\n)\r\n)\r\n5\r\n)",
	}
	for _, v := range variants {
		got, e := parseString(t, v)
		require.NoError(t, e, "source %q", v)
		assert.True(t, tree.Equal(base, got), "source %q", v)
	}
}

func TestDeepNesting(t *testing.T) {
	depth := 10000
	src := strings.Repeat("(f ", depth) + "x" + strings.Repeat(")", depth)
	got, e := parseString(t, src)
	require.NoError(t, e)

	level := 0
	n := got
	for n.IsList() {
		level++
		n = tree.NthChild(n, -1)
	}
	assert.Equal(t, depth, level)
	assert.Equal(t, "x", n.Token().Text())
}

func TestCustomTable(t *testing.T) {
	_, e := New(grammar.Table{})
	test.ExpectErrorCode(t, grammar.NoRootError, e)

	_, e = New(grammar.Table{
		grammar.Program: {grammar.Number: {grammar.Expr}},
		grammar.Expr:    {grammar.Number: {grammar.Program}},
	})
	test.ExpectErrorCode(t, grammar.LeftRecursionError, e)

	// numbers only
	table := grammar.Table{
		grammar.Program: {grammar.Number: {grammar.Number}},
	}
	p, e := New(table)
	require.NoError(t, e)

	got, e := p.Parse([]*lexer.Token{lexer.NewNumber(7)})
	require.NoError(t, e)
	assert.True(t, tree.Equal(num(7), got))

	_, e = p.Parse([]*lexer.Token{lexer.NewIdentifier("x")})
	ee := test.ExpectErrorCode(t, NoProductionError, e)
	assert.Contains(t, ee.Message, "expecting number")
}

func TestStack(t *testing.T) {
	s := newStack(1, 2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, *s.Top())
	s.Push(3)
	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, 2, s.Pop())
	assert.Equal(t, 1, s.Pop())
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Top())
	assert.Equal(t, 0, s.Pop())
}
