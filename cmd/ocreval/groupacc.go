package main

import (
	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/util"
)

func newGroupaccCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groupacc groupfile reportfile [groupreport]",
		Short: "Accuracy of a group of characters",
		Long: "Prints the character rows of an accuracy report for the characters listed in\n" +
			"groupfile, followed by their total.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.settings.Doc
			opts.EnsureNewline = false
			group, err := readText(args[0], opts)
			if err != nil {
				return err
			}
			reports, err := readReports(args[1:2])
			if err != nil {
				return err
			}
			out := accrpt.FormatGroup(accrpt.Group(reports[0], group))
			if len(args) == 3 {
				return util.Write([]byte(out), args[2])
			}
			_, err = cmd.OutOrStdout().Write([]byte(out))
			return err
		},
	}
}
