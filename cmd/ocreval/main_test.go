package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ughe/ocreval/accrpt"
)

func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runLogged(t, args...)
	return out, err
}

func runLogged(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, logs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func write(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestAccuracy(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	correct := write(t, dir, "c.txt", "{{")
	generated := write(t, dir, "g.txt", "{<")

	out, err := run(t, "accuracy", "--ensure-newline=false", correct, generated)
	require.NoError(t, err)
	want, err := os.ReadFile("../../accrpt/testdata/scenario.txt")
	require.NoError(t, err)
	assert.Equal(t, string(want), out)

	t.Run("Should append newlines by default", func(t *testing.T) {
		out, err := run(t, "accuracy", correct, generated)
		require.NoError(t, err)
		assert.Equal(t, accrpt.Format(accrpt.Score([]rune("{{\n"), []rune("{<\n"))), out)
	})

	t.Run("Should write the report, a pdf and a history entry", func(t *testing.T) {
		report := filepath.Join(dir, "out.acc")
		pdf := filepath.Join(dir, "out.pdf")
		out, err := run(t, "accuracy", "--record", "--pdf", pdf, correct, generated, report)
		require.NoError(t, err)
		assert.Empty(t, out)

		buf, err := os.ReadFile(report)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(buf), accrpt.Title))
		buf, err = os.ReadFile(pdf)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(buf, []byte("%PDF-")))

		out, err = run(t, "history", "--weak", "3")
		require.NoError(t, err)
		assert.Contains(t, out, "ACCURACY")
		assert.Contains(t, out, "66.67")
		assert.Contains(t, out, "{{}")
	})

	t.Run("Should read OCR detections", func(t *testing.T) {
		blw := write(t, dir, "g.blw", `{"algo":"GCP","regions":[{"xywh":"0,0,1,1","lines":[{"xywh":"0,0,1,1","words":[{"xywh":"0,0,1,1","text":"{<"}]}]}]}`)
		out, err := run(t, "accuracy", "--no-cache", correct, blw)
		require.NoError(t, err)
		assert.Equal(t, accrpt.Format(accrpt.Score([]rune("{{\n"), []rune("{<\n"))), out)
	})

	t.Run("Should log the OCR source at debug level", func(t *testing.T) {
		blw := write(t, dir, "d.blw", `{"algo":"AWS","regions":[{"xywh":"0,0,1,1","lines":[{"xywh":"0,0,1,1","words":[{"xywh":"0,0,1,1","text":"{<"}]}]}]}`)
		_, logs, err := runLogged(t, "accuracy", "--log-level", "debug", "--no-cache", correct, blw)
		require.NoError(t, err)
		assert.Contains(t, logs, "AWS: 1 regions, 1 lines, 1 words")
	})

	t.Run("Should reject invalid UTF-8", func(t *testing.T) {
		bad := write(t, dir, "bad.txt", "ab\xff")
		_, err := run(t, "accuracy", correct, bad)
		assert.ErrorContains(t, err, "offset 2")
	})
}

func TestAccsum(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	a := accrpt.Score([]rune("k\u00e4sin\n"), []rune("kasin\n"))
	b := accrpt.Score([]rune("{{"), []rune("{<"))
	fa := write(t, dir, "a.acc", accrpt.Format(a))
	fb := write(t, dir, "b.acc", accrpt.Format(b))

	out, err := run(t, "accsum", fa, fb)
	require.NoError(t, err)
	assert.Equal(t, accrpt.Format(accrpt.Sum(a, b)), out)

	bad := write(t, dir, "bad.acc", strings.Replace(accrpt.Format(b), "%Right", "Right", 1))
	_, err = run(t, "accsum", fa, bad)
	var me *accrpt.MalformedReportError
	require.True(t, errors.As(err, &me))
	assert.Contains(t, err.Error(), "bad.acc")
}

func TestAccci(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	var files []string
	for i, pair := range [][2]string{{"abcd", "abce"}, {"abcdefgh", "abcdefgh"}, {"xyz", "xyy"}} {
		files = append(files, write(t, dir, string(rune('a'+i))+".acc",
			accrpt.Format(accrpt.Score([]rune(pair[0]), []rune(pair[1])))))
	}
	out, err := run(t, "accci", files[0], files[1], files[2])
	require.NoError(t, err)
	assert.Contains(t, out, "             3   Observations\n")
	assert.Contains(t, out, "Approximate 95% Confidence Interval for Accuracy")

	_, err = run(t, "accci", files[0])
	assert.Error(t, err)
}

func TestAccdist(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	a := write(t, dir, "a.acc", accrpt.Format(accrpt.Score([]rune("abcd"), []rune("abce"))))
	b := write(t, dir, "b.acc", accrpt.Format(accrpt.Score([]rune("xyz"), []rune("xyz"))))

	out, err := run(t, "accdist", a, b)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 101)
	assert.Equal(t, " 75 100.00", lines[75])
	assert.Equal(t, " 76  42.86", lines[76])

	empty := write(t, dir, "empty.acc", accrpt.Format(accrpt.Sum()))
	out, err = run(t, "accdist", empty)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGroupacc(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	report := write(t, dir, "r.acc", accrpt.Format(accrpt.Score([]rune("mmm\u00e4"), []rune("mmxa"))))
	group := write(t, dir, "vowels.txt", "\u00e4 a\n")
	want := "" +
		"   Count   Missed   %Right\n" +
		"       1        1     0.00   {\u00e4}\n" +
		"       1        1     0.00   Total\n"

	out, err := run(t, "groupacc", group, report)
	require.NoError(t, err)
	assert.Equal(t, want, out)

	dst := filepath.Join(dir, "vowels.grp")
	_, err = run(t, "groupacc", group, report, dst)
	require.NoError(t, err)
	buf, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, string(buf))

	_, err = run(t, "groupacc", group, group)
	var me *accrpt.MalformedReportError
	assert.ErrorAs(t, err, &me)
}

func TestBatch(t *testing.T) {
	isolate(t)
	correct, generated, out := t.TempDir(), t.TempDir(), t.TempDir()
	write(t, correct, "p1.txt", "Aaniisuu tangaa\n")
	write(t, correct, "p2.txt", "{{\n")
	write(t, generated, "p1.txt", "Aaniisun tangaa\n")
	write(t, generated, "p2.json", `{"service":"AWS","text":"{<\n"}`)

	stdout, err := run(t, "batch", "--correct", correct, "--generated", generated, "--out", out, "--workers", "2")
	require.NoError(t, err)
	p1 := accrpt.Score([]rune("Aaniisuu tangaa\n"), []rune("Aaniisun tangaa\n"))
	p2 := accrpt.Score([]rune("{{\n"), []rune("{<\n"))
	assert.Equal(t, accrpt.Format(accrpt.Sum(p1, p2)), stdout)

	buf, err := os.ReadFile(filepath.Join(out, "p2.acc"))
	require.NoError(t, err)
	assert.Equal(t, accrpt.Format(p2), string(buf))

	_, err = run(t, "batch", "--correct", correct, "--generated", t.TempDir())
	assert.Error(t, err)

	t.Run("Should create the report directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "reports", "run1")
		_, err := run(t, "batch", "--correct", correct, "--generated", generated, "--out", nested)
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(nested, "p1.acc"))
		assert.NoError(t, err)
	})
}

func TestBatchWorkers(t *testing.T) {
	a := &app{}
	a.settings.Workers = 3
	f := &batchFlags{}
	cmd := &cobra.Command{Use: "batch"}
	f.register(cmd)
	assert.Equal(t, 3, a.workers(cmd, f))
	require.NoError(t, cmd.Flags().Set("workers", "5"))
	assert.Equal(t, 5, a.workers(cmd, f))
}

func TestEditdist(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	a := write(t, dir, "a.txt", "kasin")
	b := write(t, dir, "b.txt", "k\u00e4sin")

	out, err := run(t, "editdist", a, b)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "editdist", "-c", a, b)
	require.NoError(t, err)
	assert.Equal(t, "0.20000\n", out)
}

func TestExploreAndServe(t *testing.T) {
	isolate(t)
	correct, generated := t.TempDir(), t.TempDir()
	site := filepath.Join(t.TempDir(), "site")
	write(t, correct, "p1.txt", "abc\n")
	write(t, generated, "p1.txt", "abd\n")

	out, err := run(t, "explore", "--correct", correct, "--generated", generated, "--out", site)
	require.NoError(t, err)
	assert.Contains(t, out, "ocreval serve "+site)

	csv, err := os.ReadFile(filepath.Join(site, "data", "results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,correct,generated,characters,errors,accuracy,cer", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "p1,"))
	assert.True(t, strings.HasSuffix(lines[1], ",4,1,75.00,0.25000"))

	srv := newServer(site, ":0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/results.csv", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(csv), rec.Body.String())
	_, err = os.Stat(filepath.Join(site, "js", "main.js"))
	assert.NoError(t, err)
}

func TestConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	correct := write(t, dir, "c.txt", "\u00e4")
	generated := write(t, dir, "g.txt", "a\u0308")
	cfg := write(t, dir, "config.toml", "[accuracy]\nnormalize = \"nfc\"\n")

	out, err := run(t, "accuracy", "--config", cfg, "--no-cache", correct, generated)
	require.NoError(t, err)
	assert.Contains(t, out, "       0   Errors\n")

	out, err = run(t, "accuracy", "--config", cfg, "--no-cache", "--normalize", "none", correct, generated)
	require.NoError(t, err)
	assert.Contains(t, out, "       2   Errors\n")

	bad := write(t, dir, "bad.toml", "[log]\nlevel = \"loud\"\n")
	_, err = run(t, "accuracy", "--config", bad, correct, generated)
	assert.Error(t, err)
}
