package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Expected case statuses:
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Expected describes the outcome a case must have to pass.
type Expected struct {
	Status string `json:"status" yaml:"status" toml:"status"`

	// ErrorContains is checked as a substring of error message if not empty.
	ErrorContains string `json:"error_contains,omitempty" yaml:"error_contains,omitempty" toml:"error_contains"`
}

type Case struct {
	Description string   `json:"description" yaml:"description" toml:"description"`
	Input       string   `json:"input" yaml:"input" toml:"input"`
	Expected    Expected `json:"expected" yaml:"expected" toml:"expected"`
}

type caseFile struct {
	Cases []Case `yaml:"cases" toml:"cases"`
}

func success(input, desc string) Case {
	return Case{desc, input, Expected{Status: StatusSuccess}}
}

func failure(input, desc, contains string) Case {
	return Case{desc, input, Expected{StatusError, contains}}
}

// DefaultCases is the built-in acceptance suite.
var DefaultCases = []Case{
	success("42", "NUMBER literal"),
	success("x", "IDENTIFIER literal"),
	success("(+ 2 3)", "Simple addition"),
	success("(× x 5)", "Multiplication with identifier"),
	success("(+ (× 2 3) 4)", "Nested arithmetic"),
	success("(? (= x 0) 1 0)", "Conditional expression"),
	success("(λ x x)", "Lambda identity"),
	success("(≜ y 10 y)", "Let binding"),
	success("((λ x (+ x 1)) 5)", "Lambda application"),
	success("(× (+ 1 2) (− 5 3))", "Mixed operators with unicode minus"),
	success("(λ f (λ x (f x)))", "Higher-order lambda"),
	success("(− 7 2)", "Unicode minus operator (U+2212)"),

	failure("(+ 1)", "Too few args for +", ""),
	failure("(+ 1 2 3)", "Too many args for +", "missing closing parenthesis"),
	failure("@", "Invalid character", "character '@' (U+0040) is not in the alphabet"),
	failure(")", "Unmatched closing parenthesis", "unmatched closing parenthesis"),
	failure("(? 1 2)", "Too few args for ?", ""),
	failure("(- 7 2)", "ASCII hyphen-minus should be rejected", "character '-' (U+002D) is not in the alphabet"),
	failure("((λ x (+ x 1)) 5", "Missing closing parenthesis", "missing 1 closing parenthesis"),

	success("   42   ", "Leading/trailing spaces around number"),
	success("( + 2 3 )", "Spaces between parens, operator, and operands"),
	success("(+    2    3)", "Multiple spaces between tokens"),
	success("(\n+ \n2\t3\n)", "Newlines and tabs between tokens"),
	success("(\nλ  x   x\n)", "Lambda with mixed whitespace"),
	success("(\n(λ   x   (+  x    1))\t  5\n)", "Nested application with whitespace"),

	failure("   \n\t  ", "Whitespace-only input", ""),
	failure("", "Empty input", ""),
}

// LoadCases reads case file, format is chosen by file extension: .yaml, .yml or .toml.
// The file holds a single "cases" list.
func LoadCases(path string) ([]Case, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading case file")
	}

	cases, err := ParseCases(content, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "case file %s", path)
	}
	return cases, nil
}

// ParseCases decodes case file content, ext is a file extension with leading dot.
func ParseCases(content []byte, ext string) ([]Case, error) {
	var cf caseFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cf); err != nil {
			return nil, errors.Wrap(err, "YAML parse error")
		}
	case ".toml":
		if _, err := toml.Decode(string(content), &cf); err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}
	default:
		return nil, errors.Errorf("unsupported case file format %q", ext)
	}

	if err := validateCases(cf.Cases); err != nil {
		return nil, err
	}
	return cf.Cases, nil
}

func validateCases(cases []Case) error {
	var result *multierror.Error
	if len(cases) == 0 {
		result = multierror.Append(result, errors.New("no cases defined"))
	}

	for i, c := range cases {
		switch c.Expected.Status {
		case StatusSuccess:
			if c.Expected.ErrorContains != "" {
				result = multierror.Append(result, errors.Errorf("case #%d (%s): error_contains set for a success case", i+1, c.Description))
			}
		case StatusError:
		default:
			result = multierror.Append(result, errors.Errorf("case #%d (%s): unknown status %q", i+1, c.Description, c.Expected.Status))
		}
	}

	return result.ErrorOrNil()
}
