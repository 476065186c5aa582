package accrpt

import "errors"

var ErrEmptyInput = errors.New("No reports to sum")

// Sum adds reports field by field and merges their class, confusion and
// character rows by key. Percentages are recomputed from the summed counts.
// The sum of no reports is the zero report.
func Sum(reports ...*Report) *Report {
	t := newTally()
	for _, r := range reports {
		if r != nil {
			t.add(r)
		}
	}
	return t.report()
}

// SumStrict is Sum for callers that treat an empty input as a mistake.
func SumStrict(reports ...*Report) (*Report, error) {
	if len(reports) == 0 {
		return nil, ErrEmptyInput
	}
	return Sum(reports...), nil
}
