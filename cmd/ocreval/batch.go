package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/batch"
	"github.com/ughe/ocreval/util"
)

type batchFlags struct {
	docFlags
	correct   string
	generated string
	out       string
	workers   int
	record    bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	f.docFlags.register(cmd)
	cmd.Flags().StringVar(&f.correct, "correct", "", "directory of ground-truth texts")
	cmd.Flags().StringVar(&f.generated, "generated", "", "directory of OCR output")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "documents scored at once (0 = GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("correct")
	_ = cmd.MarkFlagRequired("generated")
}

// workers is the --workers flag when set, the configured count otherwise.
func (a *app) workers(cmd *cobra.Command, f *batchFlags) int {
	if cmd.Flags().Changed("workers") {
		return f.workers
	}
	return a.settings.Workers
}

// scoreDirs scores every file present in both directories.
func (a *app) scoreDirs(cmd *cobra.Command, f *batchFlags) ([]batch.Result, error) {
	opts, err := f.resolve(cmd, a.settings.Doc)
	if err != nil {
		return nil, err
	}
	pairs, unmatched, err := batch.Match(f.correct, f.generated)
	if err != nil {
		return nil, err
	}
	for _, name := range unmatched {
		a.log.Warn("no counterpart", "file", name)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("No matching files in: %s and %s", f.correct, f.generated)
	}
	a.log.Info("scoring", "documents", len(pairs))
	return batch.Score(cmd.Context(), pairs, batch.Options{
		Workers:       a.workers(cmd, f),
		Doc:           opts,
		LoadGenerated: a.readGenerated,
		Cache:         a.openCache(f.noCache),
		Logger:        a.log,
	})
}

func newBatchCmd(a *app) *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "batch --correct DIR --generated DIR",
		Short: "Score every document of a directory and print the summed report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := a.scoreDirs(cmd, f)
			if err != nil {
				return err
			}
			if f.out != "" {
				if err := os.MkdirAll(f.out, 0o755); err != nil {
					return err
				}
				for _, res := range results {
					name := filepath.Join(f.out, res.Name+".acc")
					if err := util.Write([]byte(accrpt.Format(res.Report)), name); err != nil {
						return err
					}
				}
			}
			total, err := batch.Reduce(cmd.Context(), batch.Reports(results), a.workers(cmd, f))
			if err != nil {
				return err
			}
			acc, _ := total.Accuracy()
			a.log.Info("done", "documents", len(results), "characters", total.Characters,
				"errors", total.Errors, "accuracy", fmt.Sprintf("%.2f", acc))
			if err := accrpt.Write(cmd.OutOrStdout(), total); err != nil {
				return err
			}
			if f.record || a.settings.HistoryEnabled {
				return a.record(cmd.Context(), results)
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.out, "out", "", "write one report per document into this directory")
	cmd.Flags().BoolVar(&f.record, "record", false, "record every document in the history database")
	return cmd
}
