package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/doc"
	"github.com/ughe/ocreval/editdist"
	"github.com/ughe/ocreval/util"
)

func readText(name string, opts doc.Options) ([]rune, error) {
	buf, err := util.Read(name)
	if err != nil {
		return nil, err
	}
	text, err := doc.Decode(buf, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return text, nil
}

func newEditdistCmd(a *app) *cobra.Command {
	var cer bool
	cmd := &cobra.Command{
		Use:   "editdist [-c] test.txt truth.txt",
		Short: "Levenshtein distance of two text files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.settings.Doc
			opts.EnsureNewline = false
			test, err := readText(args[0], opts)
			if err != nil {
				return err
			}
			truth, err := readText(args[1], opts)
			if err != nil {
				return err
			}
			dist := editdist.Levenshtein(test, truth)
			if cer {
				fmt.Fprintf(cmd.OutOrStdout(), "%.5f\n", editdist.CER(dist, len(truth)))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", dist)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&cer, "cer", "c", false, "Output character error rate instead of levenshtein dist")
	return cmd
}
