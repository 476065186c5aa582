package ci

import (
	"fmt"
	"strings"
)

// Dist is the cumulative accuracy distribution of a set of documents:
// Counts[i] is the number of characters in documents whose accuracy is at
// least i percent.
type Dist struct {
	Counts [101]int64
	Total  int64
}

// Add adds one document. Documents without characters are ignored; those
// with more errors than characters count only toward Total.
func (d *Dist) Add(o Obs) {
	if o.Count == 0 {
		return
	}
	acc := accuracy(o.Count, o.Missed)
	for i := 0; i <= 100 && acc >= float64(i); i++ {
		d.Counts[i] += o.Count
	}
	d.Total += o.Count
}

func Distribution(obs []Obs) Dist {
	var d Dist
	for _, o := range obs {
		d.Add(o)
	}
	return d
}

// Share is the percentage of all characters that are in documents of at
// least i percent accuracy.
func (d *Dist) Share(i int) float64 {
	if d.Total == 0 || i < 0 || i > 100 {
		return 0
	}
	return 100.0 * float64(d.Counts[i]) / float64(d.Total)
}

// String prints one "percent share" line per percent, ready for plotting.
// An empty distribution prints nothing.
func (d *Dist) String() string {
	if d.Total == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i <= 100; i++ {
		fmt.Fprintf(&b, "%3d %6.2f\n", i, d.Share(i))
	}
	return b.String()
}
