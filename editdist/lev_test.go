package editdist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

var testFilename = filepath.Join("testdata", "lev_test.csv")

func TestLevenshtein(t *testing.T) {
	f, err := os.Open(testFilename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error parsing %v: %v", testFilename, err)
		}
		if len(record) != 3 {
			t.Fatalf("Expected string,string,int but got: %v", record)
		}
		dist, err := strconv.Atoi(record[2])
		if err != nil {
			t.Fatalf("%v is not an int. %v", record[2], err)
		}
		check(t, record[0], record[1], dist)
	}
}

func check(t *testing.T, as string, bs string, exp int) {
	a := []rune(as)
	b := []rune(bs)
	dists := levenshtein(a, b)
	dist := dists[len(a)][len(b)]
	if exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Lev '%v' '%v'\n%v",
			exp, dist, as, bs, printTable(a, b, dists))
	}
	dist = Levenshtein(a, b)
	if exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Banded lev '%v' '%v'\n%v",
			exp, dist, as, bs, printTable(a, b, dists))
	}
	dist = Levenshtein(b, a)
	if exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Lev '%v' '%v'", exp, dist, bs, as)
	}
	if c := Cost(Align(a, b)); c != exp {
		t.Fatalf("Expected: %v. Received: %v. Align cost '%v' '%v'", exp, c, as, bs)
	}
}

func TestCER(t *testing.T) {
	if CER(0, 0) != 0.0 {
		t.Fatalf("Expected 0 for a perfect match")
	}
	if CER(3, 0) != 1.0 {
		t.Fatalf("Expected 1 for text against an empty truth")
	}
	if CER(1, 4) != 0.25 {
		t.Fatalf("Expected 0.25. Received: %v", CER(1, 4))
	}
}

func printTable(a []rune, b []rune, dist [][]int) string {
	var c strings.Builder
	// Header
	fmt.Fprint(&c, "            ")
	for j := 0; j < len(b); j++ {
		fmt.Fprintf(&c, "   %v", string(b[j]))
	}
	fmt.Fprintf(&c, "\n            ")
	for j := 0; j < len(b); j++ {
		fmt.Fprintf(&c, " ---")
	}
	// First row of numbers
	fmt.Fprint(&c, "\n        ")
	for j := 0; j < len(b)+1; j++ {
		fmt.Fprintf(&c, " %3d", dist[0][j])
	}
	// Other rows
	for i := 1; i < len(a)+1; i++ {
		fmt.Fprintf(&c, "\n   %v   |", string(a[i-1]))
		for j := 0; j < len(b)+1; j++ {
			fmt.Fprintf(&c, " %3d", dist[i][j])
		}
	}
	return c.String()
}
