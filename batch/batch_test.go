package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ughe/ocreval/accrpt"
	"github.com/ughe/ocreval/cache"
	"github.com/ughe/ocreval/doc"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}
}

func setup(t *testing.T) (string, string) {
	t.Helper()
	correct, generated := t.TempDir(), t.TempDir()
	writeFiles(t, correct, map[string]string{
		"a.txt": "Aaniisuu tangaa\n",
		"b.txt": "{{",
		"c.txt": "käsin\n",
		"d.txt": "only truth\n",
	})
	writeFiles(t, generated, map[string]string{
		"a.txt":  "Aaniisun tangaa\n",
		"b.txt":  "{<",
		"c.json": "käsin\n",
		"e.txt":  "only ocr\n",
	})
	return correct, generated
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestMatch(t *testing.T) {
	correct, generated := setup(t)
	pairs, unmatched, err := Match(correct, generated)
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{pairs[0].Name, pairs[1].Name, pairs[2].Name})
	assert.Equal(t, filepath.Join(generated, "c.json"), pairs[2].Generated)
	assert.Equal(t, []string{filepath.Join(correct, "d.txt"), filepath.Join(generated, "e.txt")}, unmatched)

	t.Run("Should reject two files with the same stem", func(t *testing.T) {
		writeFiles(t, generated, map[string]string{"a.json": "x"})
		_, _, err := Match(correct, generated)
		assert.Error(t, err)
	})
}

func TestScore(t *testing.T) {
	correct, generated := setup(t)
	pairs, _, err := Match(correct, generated)
	require.NoError(t, err)

	results, err := Score(context.Background(), pairs, Options{Workers: 2, Logger: quiet()})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, pairs[i], res.Pair)
	}
	assert.Equal(t, int64(1), results[0].Report.Errors)
	assert.Equal(t, accrpt.Score([]rune("{{"), []rune("{<")), results[1].Report)
	assert.Zero(t, results[2].Report.Errors)

	total, err := Reduce(context.Background(), Reports(results), 2)
	require.NoError(t, err)
	assert.Equal(t, accrpt.Sum(Reports(results)...), total)
}

func TestScoreError(t *testing.T) {
	correct, generated := setup(t)
	writeFiles(t, generated, map[string]string{"b.txt": "ok\xff"})
	pairs, _, err := Match(correct, generated)
	require.NoError(t, err)

	results, err := Score(context.Background(), pairs, Options{Workers: 1, Logger: quiet()})
	assert.Nil(t, results)
	var de *doc.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 2, de.Offset)
	assert.Contains(t, err.Error(), "b.txt")
}

func TestScoreMissingFile(t *testing.T) {
	_, err := Score(context.Background(), []Pair{{Name: "x", Correct: "/nonexistent/x", Generated: "/nonexistent/y"}},
		Options{Logger: quiet()})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScoreCancelled(t *testing.T) {
	correct, generated := setup(t)
	pairs, _, err := Match(correct, generated)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Score(ctx, pairs, Options{Logger: quiet()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreCache(t *testing.T) {
	correct, generated := setup(t)
	pairs, _, err := Match(correct, generated)
	require.NoError(t, err)
	c, err := cache.Open(t.TempDir())
	require.NoError(t, err)
	opts := Options{Cache: c, Logger: quiet(), Doc: doc.Options{EnsureNewline: true}}

	first, err := Score(context.Background(), pairs, opts)
	require.NoError(t, err)
	second, err := Score(context.Background(), pairs, opts)
	require.NoError(t, err)
	for i := range first {
		assert.False(t, first[i].Cached)
		assert.True(t, second[i].Cached)
		assert.Equal(t, first[i].Report, second[i].Report)
	}
}

func TestScoreLoader(t *testing.T) {
	correct, generated := setup(t)
	pairs, _, err := Match(correct, generated)
	require.NoError(t, err)
	upper := func(path string) ([]byte, error) {
		return []byte("AANIISUU TANGAA\n"), nil
	}
	results, err := Score(context.Background(), pairs[:1], Options{LoadGenerated: upper, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, int64(13), results[0].Report.Errors)
}

func TestReduce(t *testing.T) {
	var reports []*accrpt.Report
	for i := 0; i < 9; i++ {
		reports = append(reports, accrpt.Score([]rune(fmt.Sprintf("page %d {{", i)), []rune(fmt.Sprintf("page %d {<", i*7))))
	}
	for _, n := range []int{0, 1, 2, 5, 9} {
		got, err := Reduce(context.Background(), reports[:n], 3)
		require.NoError(t, err)
		assert.Equal(t, accrpt.Sum(reports[:n]...), got, "n=%d", n)
	}
}
