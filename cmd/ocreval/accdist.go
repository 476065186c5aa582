package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/ci"
)

func newAccdistCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accdist reportfile...",
		Short: "Distribution of characters by document accuracy",
		Long: "Prints, for every percent p from 0 to 100, the share of all characters that\n" +
			"are in documents with an accuracy of at least p. Nothing is printed when the\n" +
			"reports have no characters.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := readReports(args)
			if err != nil {
				return err
			}
			d := ci.Distribution(ci.Observations(reports))
			a.log.Debug("distribution", "documents", len(reports), "characters", d.Total)
			_, err = io.WriteString(cmd.OutOrStdout(), d.String())
			return err
		},
	}
}
