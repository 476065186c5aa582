package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/batch"
	"github.com/ughe/ocreval/pdfrpt"
	"github.com/ughe/ocreval/store"
	"github.com/ughe/ocreval/util"
)

type accuracyFlags struct {
	docFlags
	pdf    string
	record bool
}

func newAccuracyCmd(a *app) *cobra.Command {
	f := &accuracyFlags{}
	cmd := &cobra.Command{
		Use:   "accuracy correctfile generatedfile [reportfile]",
		Short: "Score one OCR output against its ground truth",
		Long: "Aligns the generated text with the correct text and prints the accuracy report.\n" +
			"The generated file may be plain text, an OCR result (.json) or a detection (.blw).",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAccuracy(cmd, f, args)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.pdf, "pdf", "", "also render the report to this PDF file")
	cmd.Flags().BoolVar(&f.record, "record", false, "record the run in the history database")
	return cmd
}

func (a *app) runAccuracy(cmd *cobra.Command, f *accuracyFlags, args []string) error {
	opts, err := f.resolve(cmd, a.settings.Doc)
	if err != nil {
		return err
	}
	pair := batch.Pair{
		Name:      strings.TrimSuffix(filepath.Base(args[1]), filepath.Ext(args[1])),
		Correct:   args[0],
		Generated: args[1],
	}
	results, err := batch.Score(cmd.Context(), []batch.Pair{pair}, batch.Options{
		Workers:       1,
		Doc:           opts,
		LoadGenerated: a.readGenerated,
		Cache:         a.openCache(f.noCache),
		Logger:        a.log,
	})
	if err != nil {
		return err
	}
	r := results[0].Report

	if len(args) == 3 {
		if err := util.Write([]byte(accrpt.Format(r)), args[2]); err != nil {
			return err
		}
	} else if err := accrpt.Write(cmd.OutOrStdout(), r); err != nil {
		return err
	}

	if f.pdf != "" {
		var buf bytes.Buffer
		if err := pdfrpt.Render(&buf, pair.Name, r); err != nil {
			return err
		}
		if err := util.Write(buf.Bytes(), f.pdf); err != nil {
			return err
		}
		a.log.Info("wrote pdf", "file", f.pdf)
	}

	if f.record || a.settings.HistoryEnabled {
		return a.record(cmd.Context(), []batch.Result{results[0]})
	}
	return nil
}

func (a *app) record(ctx context.Context, results []batch.Result) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	for _, res := range results {
		id, err := st.Record(ctx, store.Run{
			Name:      res.Name,
			Correct:   res.Correct,
			Generated: res.Generated,
			Report:    res.Report,
		})
		if err != nil {
			return fmt.Errorf("failed to record %s: %w", res.Name, err)
		}
		a.log.Debug("recorded", "name", res.Name, "id", id)
	}
	return nil
}
