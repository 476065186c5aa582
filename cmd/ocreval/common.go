package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/cache"
	"github.com/ughe/ocreval/doc"
	"github.com/ughe/ocreval/ocr"
	"github.com/ughe/ocreval/store"
	"github.com/ughe/ocreval/util"
)

type docFlags struct {
	normalize     string
	ensureNewline bool
	noCache       bool
}

func (f *docFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.normalize, "normalize", "none", "Unicode normalization: nfc, nfd or none")
	cmd.Flags().BoolVar(&f.ensureNewline, "ensure-newline", true, "append a final newline to texts without one")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "do not read or write the report cache")
}

// resolve applies the flags that were set on top of the config file.
func (f *docFlags) resolve(cmd *cobra.Command, base doc.Options) (doc.Options, error) {
	opts := base
	if cmd.Flags().Changed("normalize") {
		form, err := doc.ParseForm(f.normalize)
		if err != nil {
			return doc.Options{}, err
		}
		opts.Form = form
	}
	if cmd.Flags().Changed("ensure-newline") {
		opts.EnsureNewline = f.ensureNewline
	}
	return opts, nil
}

func (a *app) openCache(disabled bool) *cache.Cache {
	if disabled || !a.settings.CacheEnabled {
		return nil
	}
	c, err := cache.Open(a.settings.CacheDir)
	if err != nil {
		a.log.Warn("cache disabled", "dir", a.settings.CacheDir, "err", err)
		return nil
	}
	return c
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.settings.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

// readGenerated loads OCR output, unwrapping result and blw files.
func (a *app) readGenerated(path string) ([]byte, error) {
	raw, err := util.Read(path)
	if err != nil {
		return nil, err
	}
	if a.log.GetLevel() <= log.DebugLevel {
		if desc, err := ocr.Describe(path, raw); err == nil {
			a.log.Debug("generated", "file", path, "source", desc)
		}
	}
	return ocr.Text(path, raw)
}

func readReports(names []string) ([]*accrpt.Report, error) {
	reports := make([]*accrpt.Report, 0, len(names))
	for _, name := range names {
		buf, err := util.Read(name)
		if err != nil {
			return nil, err
		}
		r, err := accrpt.Parse(string(buf))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
