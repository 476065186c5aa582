package accrpt

import (
	"github.com/ughe/ocreval/charclass"
	"github.com/ughe/ocreval/editdist"
)

// Build tallies an alignment into a Report. Every operation with a correct
// character counts toward that character and its class; every operation
// other than a match is one error and one confusion.
func Build(ops []editdist.Op) *Report {
	t := newTally()
	var o Ops
	for _, op := range ops {
		switch op.Kind {
		case editdist.Match:
			t.truth(op.Correct, 0)
		case editdist.Substitute:
			t.truth(op.Correct, 1)
			t.confusion(string(op.Correct), string(op.Generated), 1, 0)
			o.Subst++
		case editdist.Delete:
			t.truth(op.Correct, 1)
			t.confusion(string(op.Correct), "", 1, 0)
			o.Ins++
		case editdist.Insert:
			t.confusion("", string(op.Generated), 1, 0)
			o.Del++
		}
	}
	o.Errors = o.Ins + o.Subst + o.Del
	t.errors = o.Errors
	t.unmarked = o
	t.total = o
	return t.report()
}

// Score aligns the two texts and builds their report.
func Score(correct, generated []rune) *Report {
	return Build(editdist.Align(correct, generated))
}

func (t *tally) truth(r rune, missed int64) {
	t.characters++
	t.char(r, 1, missed)
	t.class(charclass.Of(r), 1, missed)
}
