// Package report runs MiniLisp acceptance cases and writes their results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/ava12/minilisp"
	"github.com/ava12/minilisp/tree"
)

// Analyser is implemented by *analyser.Analyser.
type Analyser interface {
	Analyse(input string) (tree.Node, error)
}

type Actual struct {
	Status    string    `json:"status"`
	ParseTree tree.Node `json:"parse_tree"`
	Error     *string   `json:"error"`
	Code      int       `json:"code,omitempty"`
}

type Result struct {
	Description string   `json:"description"`
	Input       string   `json:"input"`
	Expected    Expected `json:"expected_output"`
	Actual      Actual   `json:"actual_output"`
	Success     bool     `json:"success"`
}

type Report struct {
	RunID   string   `json:"run_id"`
	Total   int      `json:"total"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

// Run analyses every case input and checks the outcome.
func Run(a Analyser, cases []Case) *Report {
	r := &Report{
		RunID:   uuid.NewString(),
		Total:   len(cases),
		Results: make([]Result, 0, len(cases)),
	}

	for _, c := range cases {
		res := runCase(a, c)
		if res.Success {
			r.Passed++
		} else {
			r.Failed++
			glog.V(1).Infof("case %q failed: expected %s, got %s", c.Description, c.Expected.Status, res.Actual.Status)
		}
		r.Results = append(r.Results, res)
	}

	glog.V(1).Infof("run %s: %d of %d cases passed", r.RunID, r.Passed, r.Total)
	return r
}

func runCase(a Analyser, c Case) Result {
	res := Result{
		Description: c.Description,
		Input:       c.Input,
		Expected:    c.Expected,
	}

	root, e := a.Analyse(c.Input)
	if e == nil {
		res.Actual.Status = StatusSuccess
		res.Actual.ParseTree = root
		res.Success = (c.Expected.Status == StatusSuccess)
		return res
	}

	msg := e.Error()
	res.Actual.Status = StatusError
	res.Actual.Error = &msg
	var me *minilisp.Error
	if errors.As(e, &me) {
		res.Actual.Code = me.Code
	}
	res.Success = c.Expected.Status == StatusError &&
		(c.Expected.ErrorContains == "" || strings.Contains(msg, c.Expected.ErrorContains))
	return res
}

// OK reports whether all cases passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// WriteJSON writes indented report, non-ASCII characters are written as is.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(r), "encoding report")
}

// WriteSummary writes a table of case results followed by totals.
func (r *Report) WriteSummary(w io.Writer, colored bool) {
	pass, fail := fmt.Sprint, fmt.Sprint
	if colored {
		green := color.New(color.FgGreen, color.Bold)
		red := color.New(color.FgRed, color.Bold)
		green.EnableColor()
		red.EnableColor()
		pass, fail = green.Sprint, red.Sprint
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Description", "Input", "Result"})
	table.SetAutoWrapText(false)
	for i, res := range r.Results {
		verdict := pass("PASS")
		if !res.Success {
			verdict = fail("FAIL")
		}
		table.Append([]string{strconv.Itoa(i + 1), res.Description, strconv.Quote(res.Input), verdict})
	}
	table.SetFooter([]string{"", "", "passed", fmt.Sprintf("%d/%d", r.Passed, r.Total)})
	table.Render()

	fmt.Fprintf(w, "run %s\n", r.RunID)
}
