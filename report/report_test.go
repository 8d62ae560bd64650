package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/minilisp/analyser"
	"github.com/ava12/minilisp/lexer"
	"github.com/ava12/minilisp/parser"
)

func defaultAnalyser(t *testing.T) *analyser.Analyser {
	a, e := analyser.New()
	require.NoError(t, e)
	return a
}

func TestDefaultCasesPass(t *testing.T) {
	r := Run(defaultAnalyser(t), DefaultCases)
	for _, res := range r.Results {
		assert.True(t, res.Success, "%s (%q): %+v", res.Description, res.Input, res.Actual)
	}
	assert.True(t, r.OK())
	assert.Equal(t, len(DefaultCases), r.Total)
	assert.Equal(t, r.Total, r.Passed)
	assert.Zero(t, r.Failed)
	_, e := uuid.Parse(r.RunID)
	assert.NoError(t, e)
}

func TestResultDetails(t *testing.T) {
	cases := []Case{
		success("(+ 2 3)", "ok"),
		failure(")", "unmatched", ""),
		success("(+ 1)", "wrong expectation"),
		failure("x", "not an error", ""),
		failure("@", "wrong substring", "no such text"),
	}
	r := Run(defaultAnalyser(t), cases)
	require.Len(t, r.Results, len(cases))
	assert.Equal(t, 2, r.Passed)
	assert.Equal(t, 3, r.Failed)
	assert.False(t, r.OK())

	ok := r.Results[0]
	assert.True(t, ok.Success)
	assert.Equal(t, StatusSuccess, ok.Actual.Status)
	assert.NotNil(t, ok.Actual.ParseTree)
	assert.Nil(t, ok.Actual.Error)

	unmatched := r.Results[1]
	assert.True(t, unmatched.Success)
	assert.Equal(t, StatusError, unmatched.Actual.Status)
	assert.Nil(t, unmatched.Actual.ParseTree)
	require.NotNil(t, unmatched.Actual.Error)
	assert.Contains(t, *unmatched.Actual.Error, "unmatched")
	assert.Equal(t, parser.UnmatchedParenError, unmatched.Actual.Code)

	assert.False(t, r.Results[2].Success)
	assert.False(t, r.Results[3].Success)
	assert.False(t, r.Results[4].Success)
	assert.Equal(t, lexer.WrongCharError, r.Results[4].Actual.Code)
}

func TestWriteJSON(t *testing.T) {
	cases := []Case{
		success("(λ x x)", "Lambda identity"),
		failure("", "Empty input", ""),
	}
	r := Run(defaultAnalyser(t), cases)
	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteJSON(buf))
	assert.Contains(t, buf.String(), `"input": "(λ x x)"`)

	var decoded struct {
		RunID   string `json:"run_id"`
		Total   int    `json:"total"`
		Results []struct {
			Expected map[string]any `json:"expected_output"`
			Actual   struct {
				Status    string  `json:"status"`
				ParseTree any     `json:"parse_tree"`
				Error     *string `json:"error"`
			} `json:"actual_output"`
			Success bool `json:"success"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Equal(t, 2, decoded.Total)
	require.Len(t, decoded.Results, 2)

	first := decoded.Results[0]
	assert.Equal(t, "success", first.Expected["status"])
	assert.NotContains(t, first.Expected, "error_contains")
	assert.Equal(t, []any{
		map[string]any{"type": "LAMBDA", "value": "λ"},
		map[string]any{"type": "IDENTIFIER", "value": "x"},
		map[string]any{"type": "IDENTIFIER", "value": "x"},
	}, first.Actual.ParseTree)
	assert.Nil(t, first.Actual.Error)

	second := decoded.Results[1]
	assert.Equal(t, "error", second.Actual.Status)
	assert.Nil(t, second.Actual.ParseTree)
	require.NotNil(t, second.Actual.Error)
	assert.Contains(t, *second.Actual.Error, "empty input")
	assert.True(t, second.Success)
}

func TestWriteSummary(t *testing.T) {
	cases := []Case{
		success("42", "number"),
		success("@", "bad char"),
	}
	r := Run(defaultAnalyser(t), cases)

	buf := &bytes.Buffer{}
	r.WriteSummary(buf, false)
	out := buf.String()
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, `"@"`)
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, r.RunID)
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	r.WriteSummary(buf, true)
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestParseCases(t *testing.T) {
	yamlSrc := `
cases:
  - description: addition
    input: "(+ 2 3)"
    expected:
      status: success
  - description: hyphen
    input: "(- 7 2)"
    expected:
      status: error
      error_contains: "character '-'"
`
	tomlSrc := `
[[cases]]
description = "addition"
input = "(+ 2 3)"
[cases.expected]
status = "success"

[[cases]]
description = "hyphen"
input = "(- 7 2)"
[cases.expected]
status = "error"
error_contains = "character '-'"
`
	expected := []Case{
		success("(+ 2 3)", "addition"),
		failure("(- 7 2)", "hyphen", "character '-'"),
	}

	cases, e := ParseCases([]byte(yamlSrc), ".yaml")
	require.NoError(t, e)
	assert.Equal(t, expected, cases)

	cases, e = ParseCases([]byte(tomlSrc), ".TOML")
	require.NoError(t, e)
	assert.Equal(t, expected, cases)

	r := Run(defaultAnalyser(t), cases)
	assert.True(t, r.OK())
}

func TestParseCasesErrors(t *testing.T) {
	_, e := ParseCases([]byte("cases: []"), ".json")
	assert.ErrorContains(t, e, "unsupported")

	_, e = ParseCases([]byte("cases: [}"), ".yml")
	assert.ErrorContains(t, e, "YAML")

	_, e = ParseCases([]byte("[[cases]\n"), ".toml")
	assert.ErrorContains(t, e, "TOML")

	_, e = ParseCases([]byte("cases: []"), ".yaml")
	assert.ErrorContains(t, e, "no cases")

	src := `
cases:
  - description: one
    input: "1"
    expected: {status: maybe}
  - description: two
    input: "2"
    expected: {status: success, error_contains: oops}
`
	_, e = ParseCases([]byte(src), ".yaml")
	require.Error(t, e)
	assert.Contains(t, e.Error(), "2 errors occurred")
	assert.Contains(t, e.Error(), `unknown status "maybe"`)
	assert.Contains(t, e.Error(), "case #2 (two)")
}

func TestLoadCases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cases.yml")
	content := "cases:\n  - {description: x, input: x, expected: {status: success}}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cases, e := LoadCases(path)
	require.NoError(t, e)
	assert.Equal(t, []Case{success("x", "x")}, cases)

	_, e = LoadCases(filepath.Join(dir, "missing.yml"))
	assert.ErrorContains(t, e, "reading case file")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("nonsense ="), 0o644))
	_, e = LoadCases(bad)
	require.Error(t, e)
	assert.True(t, strings.Contains(e.Error(), bad))
}
