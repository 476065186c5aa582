package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/ci"
)

// accuracyColor grades an accuracy percentage for terminal output.
func accuracyColor(pct float64) *color.Color {
	switch {
	case pct >= 99:
		return color.New(color.FgGreen)
	case pct >= 95:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}

func newAccciCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accci reportfile...",
		Short: "Confidence interval for the accuracy of several reports",
		Long:  "Treats each report as one observation and prints an approximate 95% jackknife confidence interval.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := readReports(args)
			if err != nil {
				return err
			}
			iv, err := ci.Jackknife(ci.Observations(reports))
			if err != nil {
				return err
			}
			_, err = accuracyColor(iv.Lower).Fprint(cmd.OutOrStdout(), iv.String())
			return err
		},
	}
}
