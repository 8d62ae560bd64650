package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ava12/minilisp/analyser"
	"github.com/ava12/minilisp/report"
)

func newCheckCmd(o *options) *cobra.Command {
	var (
		output  string
		colored bool
	)

	cmd := &cobra.Command{
		Use:   "check [cases-file]",
		Short: "Run acceptance cases",
		Long: `Runs acceptance cases from YAML or TOML file, or the built-in cases
if no file is given, prints a summary and optionally writes JSON report.
Exits with non-zero code if any case fails.

Examples:
  minilisp check
  minilisp check cases.toml -o report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.cfg.Cases
			if len(args) > 0 {
				path = args[0]
			}
			if !cmd.Flags().Changed("output") {
				output = o.cfg.Report
			}
			if !cmd.Flags().Changed("color") {
				colored = !color.NoColor
				if o.cfg.Color != nil {
					colored = *o.cfg.Color
				}
			}

			cases := report.DefaultCases
			if path != "" {
				var err error
				cases, err = report.LoadCases(path)
				if err != nil {
					return err
				}
			}

			a, err := analyser.New()
			if err != nil {
				return err
			}

			r := report.Run(a, cases)
			if output != "" {
				if err := writeReport(r, output); err != nil {
					glog.Errorf("cannot write report: %s", err)
					return err
				}
			}

			r.WriteSummary(cmd.OutOrStdout(), colored)
			if !r.OK() {
				return errors.Errorf("%d of %d cases failed", r.Failed, r.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "JSON report file name")
	cmd.Flags().BoolVar(&colored, "color", false, "colour summary, default is on for terminals")
	return cmd
}

func writeReport(r *report.Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating report file")
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = errors.Wrap(e, "closing report file")
		}
	}()

	return r.WriteJSON(f)
}
