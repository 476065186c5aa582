// Package batch scores many document pairs in parallel and reduces their
// reports to one.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/cache"
	"github.com/ughe/ocreval/doc"
)

// Pair names a ground-truth file and the OCR output scored against it.
type Pair struct {
	Name      string
	Correct   string
	Generated string
}

// Loader returns the raw text of a file. Generated files go through it so
// that OCR result files can be unwrapped to plain text.
type Loader func(path string) ([]byte, error)

type Options struct {
	// Goroutines scoring at once; 0 means GOMAXPROCS
	Workers int
	Doc     doc.Options
	// Defaults to os.ReadFile
	LoadGenerated Loader
	Cache         *cache.Cache
	Logger        *log.Logger
}

type Result struct {
	Pair
	Report *accrpt.Report
	Cached bool
}

func (o *Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Score scores every pair and returns the results in input order. The first
// failure cancels the remaining pairs and is returned alone.
func Score(ctx context.Context, pairs []Pair, opts Options) ([]Result, error) {
	logger := opts.logger()
	results := make([]Result, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := range pairs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := scoreOne(pairs[i], &opts)
			if err != nil {
				return err
			}
			acc, _ := res.Report.Accuracy()
			logger.Debug("scored", "name", res.Name, "characters", res.Report.Characters,
				"errors", res.Report.Errors, "accuracy", fmt.Sprintf("%.2f", acc), "cached", res.Cached)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scoreOne(p Pair, opts *Options) (Result, error) {
	load := opts.LoadGenerated
	if load == nil {
		load = os.ReadFile
	}
	correct, err := os.ReadFile(p.Correct)
	if err != nil {
		return Result{}, err
	}
	generated, err := load(p.Generated)
	if err != nil {
		return Result{}, err
	}

	key := cache.KeyFor(correct, generated, opts.Doc)
	if r, ok, err := opts.Cache.Get(key); err != nil {
		opts.logger().Warn("cache read failed", "name", p.Name, "err", err)
	} else if ok {
		return Result{p, r, true}, nil
	}

	c, err := doc.Decode(correct, opts.Doc)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", p.Correct, err)
	}
	gen, err := doc.Decode(generated, opts.Doc)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", p.Generated, err)
	}
	r := accrpt.Score(c, gen)
	if err := opts.Cache.Put(key, r); err != nil {
		opts.logger().Warn("cache write failed", "name", p.Name, "err", err)
	}
	return Result{p, r, false}, nil
}

// Reports returns the report of every result.
func Reports(results []Result) []*accrpt.Report {
	reports := make([]*accrpt.Report, len(results))
	for i, r := range results {
		reports[i] = r.Report
	}
	return reports
}

// Reduce sums reports pairwise, one parallel round per level of the tree.
// The result equals accrpt.Sum(reports...).
func Reduce(ctx context.Context, reports []*accrpt.Report, workers int) (*accrpt.Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	level := reports
	for len(level) > 1 {
		next := make([]*accrpt.Report, (len(level)+1)/2)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range next {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if 2*i+1 < len(level) {
					next[i] = accrpt.Sum(level[2*i], level[2*i+1])
				} else {
					next[i] = level[2*i]
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		level = next
	}
	if len(level) == 0 {
		return accrpt.Sum(), nil
	}
	return accrpt.Sum(level[0]), nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Match pairs the regular files of two directories by name without
// extension, so page1.txt matches page1.txt or page1.json. Files present on
// only one side are returned as unmatched.
func Match(correctDir, generatedDir string) ([]Pair, []string, error) {
	list := func(dir string) (map[string]string, error) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		files := make(map[string]string)
		for _, e := range entries {
			if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			s := stem(e.Name())
			if prev, ok := files[s]; ok {
				return nil, fmt.Errorf("Ambiguous files in %s: %s and %s", dir, prev, e.Name())
			}
			files[s] = e.Name()
		}
		return files, nil
	}
	correct, err := list(correctDir)
	if err != nil {
		return nil, nil, err
	}
	generated, err := list(generatedDir)
	if err != nil {
		return nil, nil, err
	}

	var pairs []Pair
	var unmatched []string
	for s, c := range correct {
		g, ok := generated[s]
		if !ok {
			unmatched = append(unmatched, filepath.Join(correctDir, c))
			continue
		}
		pairs = append(pairs, Pair{
			Name:      s,
			Correct:   filepath.Join(correctDir, c),
			Generated: filepath.Join(generatedDir, g),
		})
	}
	for s, g := range generated {
		if _, ok := correct[s]; !ok {
			unmatched = append(unmatched, filepath.Join(generatedDir, g))
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	sort.Strings(unmatched)
	return pairs, unmatched, nil
}
