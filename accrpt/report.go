// Package accrpt builds, sums, prints and parses character accuracy reports.
//
// A Report only stores counts. Every percentage is derived from the counts
// when it is asked for, so summed reports never average percentages.
package accrpt

// Ops counts edit operations from the point of view of correcting the
// generated text: Ins are correct characters the OCR dropped, Del are
// characters the OCR produced that are not in the truth.
type Ops struct {
	Ins    int64
	Subst  int64
	Del    int64
	Errors int64
}

func (o Ops) add(p Ops) Ops {
	return Ops{o.Ins + p.Ins, o.Subst + p.Subst, o.Del + p.Del, o.Errors + p.Errors}
}

// ClassStat is the count of ground-truth characters of one class and how
// many of them were misrecognized.
type ClassStat struct {
	Name   string
	Count  int64
	Missed int64
}

func (c ClassStat) Right() (float64, bool) {
	return percent(c.Count-c.Missed, c.Count)
}

type CharStat struct {
	Char   rune
	Count  int64
	Missed int64
}

func (c CharStat) Right() (float64, bool) {
	return percent(c.Count-c.Missed, c.Count)
}

// Confusion counts the errors caused by reading Correct as Generated. An
// empty side means nothing was there.
type Confusion struct {
	Correct   string
	Generated string
	Errors    int64
	Marked    int64
}

// Key is the confusion as printed in a report, e.g. {ä}-{a}.
func (c Confusion) Key() string {
	return "{" + RenderString(c.Correct) + "}-{" + RenderString(c.Generated) + "}"
}

// Report is the accuracy of one or more generated texts. The marking fields
// stay zero for reports built from an alignment; they are kept so that
// reports from marking tools parse and sum without loss.
//
// Classes are in canonical class order, Confusions by descending Errors, and
// Chars by codepoint.
type Report struct {
	Characters       int64
	Errors           int64
	RejectCharacters int64
	SuspectMarkers   int64
	FalseMarks       int64
	Marked           Ops
	Unmarked         Ops
	Total            Ops
	Classes          []ClassStat
	Confusions       []Confusion
	Chars            []CharStat
}

func percent(num, den int64) (float64, bool) {
	if den == 0 {
		return 0, false
	}
	return 100.0 * float64(num) / float64(den), true
}

func (r *Report) Accuracy() (float64, bool) {
	return percent(r.Characters-r.Errors, r.Characters)
}

func (r *Report) CharactersMarked() (float64, bool) {
	return percent(r.RejectCharacters+r.SuspectMarkers, r.Characters)
}

func (r *Report) AccuracyAfterCorrection() (float64, bool) {
	return percent(r.Characters-r.Unmarked.Errors, r.Characters)
}

// TotalClass sums every class row.
func (r *Report) TotalClass() ClassStat {
	total := ClassStat{Name: "Total"}
	for _, c := range r.Classes {
		total.Count += c.Count
		total.Missed += c.Missed
	}
	return total
}

// Char returns the row for c, if c occurs in the ground truth.
func (r *Report) Char(c rune) (CharStat, bool) {
	for _, s := range r.Chars {
		if s.Char == c {
			return s, true
		}
	}
	return CharStat{}, false
}

// Class returns the row of the named class.
func (r *Report) Class(name string) (ClassStat, bool) {
	for _, c := range r.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassStat{}, false
}

// Confusion returns the entry for the given pair.
func (r *Report) Confusion(correct, generated string) (Confusion, bool) {
	for _, c := range r.Confusions {
		if c.Correct == correct && c.Generated == generated {
			return c, true
		}
	}
	return Confusion{}, false
}
