package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ughe/explorer"

	"github.com/ughe/ocreval/batch"
	"github.com/ughe/ocreval/editdist"
)

// writeSite copies the explorer viewer into dir.
func writeSite(dir string) error {
	files := []struct {
		name string
		data []byte
	}{
		{"index.html", explorer.Index},
		{"style.css", explorer.Style},
		{filepath.Join("js", "main.js"), explorer.Main},
		{filepath.Join("js", "grid.js"), explorer.Grid},
	}
	for _, f := range files {
		dst := filepath.Join(dir, f.name)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, f.data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// writeResults stores one row per document with its counts, accuracy and
// character error rate.
func writeResults(name string, results []batch.Result) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	w.Write([]string{"name", "correct", "generated", "characters", "errors", "accuracy", "cer"})
	for _, res := range results {
		r := res.Report
		acc, _ := r.Accuracy()
		w.Write([]string{
			res.Name,
			res.Correct,
			res.Generated,
			strconv.FormatInt(r.Characters, 10),
			strconv.FormatInt(r.Errors, 10),
			strconv.FormatFloat(acc, 'f', 2, 64),
			strconv.FormatFloat(editdist.CER(int(r.Errors), int(r.Characters)), 'f', 5, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newExploreCmd(a *app) *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "explore --correct DIR --generated DIR",
		Short: "Build a static site to browse per-document accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := a.scoreDirs(cmd, f)
			if err != nil {
				return err
			}
			if err := writeSite(f.out); err != nil {
				return err
			}
			if err := writeResults(filepath.Join(f.out, "data", "results.csv"), results); err != nil {
				return err
			}
			a.log.Info("wrote explorer", "dir", f.out, "documents", len(results))
			fmt.Fprintf(cmd.OutOrStdout(), "[DONE] Run: ocreval serve %s\n", f.out)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.out, "out", "explorer", "site directory")
	return cmd
}
