package accrpt

import (
	"sort"

	"github.com/ughe/ocreval/charclass"
)

type counts struct {
	count, missed int64
}

type confKey struct {
	correct, generated string
}

// tally accumulates counts keyed by identity. Build, Sum and Parse all go
// through it, so every Report they return is in the same canonical form.
type tally struct {
	characters       int64
	errors           int64
	rejectCharacters int64
	suspectMarkers   int64
	falseMarks       int64
	marked           Ops
	unmarked         Ops
	total            Ops

	classes map[string]counts
	chars   map[rune]counts
	confs   map[confKey]counts
}

func newTally() *tally {
	return &tally{
		classes: make(map[string]counts),
		chars:   make(map[rune]counts),
		confs:   make(map[confKey]counts),
	}
}

func (t *tally) class(name string, count, missed int64) {
	c := t.classes[name]
	t.classes[name] = counts{c.count + count, c.missed + missed}
}

func (t *tally) char(r rune, count, missed int64) {
	c := t.chars[r]
	t.chars[r] = counts{c.count + count, c.missed + missed}
}

func (t *tally) confusion(correct, generated string, errors, marked int64) {
	k := confKey{correct, generated}
	c := t.confs[k]
	t.confs[k] = counts{c.count + errors, c.missed + marked}
}

func (t *tally) add(r *Report) {
	t.characters += r.Characters
	t.errors += r.Errors
	t.rejectCharacters += r.RejectCharacters
	t.suspectMarkers += r.SuspectMarkers
	t.falseMarks += r.FalseMarks
	t.marked = t.marked.add(r.Marked)
	t.unmarked = t.unmarked.add(r.Unmarked)
	t.total = t.total.add(r.Total)
	for _, c := range r.Classes {
		t.class(c.Name, c.Count, c.Missed)
	}
	for _, c := range r.Chars {
		t.char(c.Char, c.Count, c.Missed)
	}
	for _, c := range r.Confusions {
		t.confusion(c.Correct, c.Generated, c.Errors, c.Marked)
	}
}

func (t *tally) report() *Report {
	r := &Report{
		Characters:       t.characters,
		Errors:           t.errors,
		RejectCharacters: t.rejectCharacters,
		SuspectMarkers:   t.suspectMarkers,
		FalseMarks:       t.falseMarks,
		Marked:           t.marked,
		Unmarked:         t.unmarked,
		Total:            t.total,
	}
	for name, c := range t.classes {
		if c.count != 0 || c.missed != 0 {
			r.Classes = append(r.Classes, ClassStat{name, c.count, c.missed})
		}
	}
	sort.Slice(r.Classes, func(i, j int) bool {
		return classLess(r.Classes[i].Name, r.Classes[j].Name)
	})
	for ch, c := range t.chars {
		if c.count != 0 || c.missed != 0 {
			r.Chars = append(r.Chars, CharStat{ch, c.count, c.missed})
		}
	}
	sort.Slice(r.Chars, func(i, j int) bool {
		return r.Chars[i].Char < r.Chars[j].Char
	})
	for k, c := range t.confs {
		if c.count != 0 || c.missed != 0 {
			r.Confusions = append(r.Confusions, Confusion{k.correct, k.generated, c.count, c.missed})
		}
	}
	sort.Slice(r.Confusions, func(i, j int) bool {
		a, b := r.Confusions[i], r.Confusions[j]
		if a.Errors != b.Errors {
			return a.Errors > b.Errors
		}
		if a.Marked != b.Marked {
			return a.Marked > b.Marked
		}
		if a.Correct != b.Correct {
			return a.Correct < b.Correct
		}
		return a.Generated < b.Generated
	})
	return r
}

// Known classes in table order, then any other label alphabetically.
func classLess(a, b string) bool {
	ca, oka := charclass.Lookup(a)
	cb, okb := charclass.Lookup(b)
	switch {
	case oka && okb:
		return ca < cb
	case oka != okb:
		return oka
	default:
		return a < b
	}
}
