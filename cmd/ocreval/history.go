package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/accrpt"
)

func newHistoryCmd(a *app) *cobra.Command {
	var last, weak, window int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			out := cmd.OutOrStdout()

			runs, err := st.Runs(cmd.Context(), last)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}
			rows := make([][]string, len(runs))
			accs := make([]string, len(runs))
			for i, run := range runs {
				accs[i] = percentCell(run.Report.Accuracy())
				rows[i] = []string{
					shortID(run.ID),
					run.RecordedAt.Local().Format("2006-01-02 15:04"),
					strconv.FormatInt(run.Report.Characters, 10),
					strconv.FormatInt(run.Report.Errors, 10),
					accs[i],
					run.Name,
				}
			}
			lines := formatTable([]string{"ID", "RECORDED", "CHARS", "ERRORS", "ACCURACY", "NAME"},
				rows, map[int]bool{2: true, 3: true, 4: true})
			fmt.Fprintln(out, lines[0])
			for i, line := range lines[1:] {
				acc, ok := runs[i].Report.Accuracy()
				if ok {
					// The cell is padded already; only its digits are colored.
					line = strings.Replace(line, accs[i], accuracyColor(acc).Sprint(accs[i]), 1)
				}
				fmt.Fprintln(out, line)
			}

			if weak <= 0 {
				return nil
			}
			chars, err := st.WeakChars(cmd.Context(), window, weak)
			if err != nil {
				return err
			}
			if len(chars) == 0 {
				return nil
			}
			rows = rows[:0]
			for _, c := range chars {
				stat := accrpt.CharStat{Char: c.Char, Count: c.Count, Missed: c.Missed}
				rows = append(rows, []string{
					"{" + accrpt.Render(c.Char) + "}",
					strconv.FormatInt(c.Count, 10),
					strconv.FormatInt(c.Missed, 10),
					percentCell(stat.Right()),
				})
			}
			fmt.Fprintln(out)
			for _, line := range formatTable([]string{"CHAR", "COUNT", "MISSED", "%RIGHT"}, rows,
				map[int]bool{1: true, 2: true, 3: true}) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&last, "last", 20, "show the last N runs (0 = all)")
	cmd.Flags().IntVar(&weak, "weak", 0, "also list the N most missed characters")
	cmd.Flags().IntVar(&window, "window", 20, "number of recent runs for --weak")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func percentCell(v float64, ok bool) string {
	if !ok {
		return "------"
	}
	return fmt.Sprintf("%.2f", v)
}
