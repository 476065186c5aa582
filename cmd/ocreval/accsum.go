package main

import (
	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/batch"
)

func newAccsumCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "accsum reportfile...",
		Short: "Sum accuracy reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := readReports(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.settings.Workers
			}
			sum, err := batch.Reduce(cmd.Context(), reports, workers)
			if err != nil {
				return err
			}
			a.log.Debug("summed", "reports", len(reports), "characters", sum.Characters)
			return accrpt.Write(cmd.OutOrStdout(), sum)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "goroutines summing at once (0 = GOMAXPROCS)")
	return cmd
}
