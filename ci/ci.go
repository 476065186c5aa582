// Package ci estimates a confidence interval for character accuracy from a
// set of per-document observations.
package ci

import (
	"errors"
	"fmt"
	"math"

	"github.com/ughe/ocreval/accrpt"
)

var ErrTooFew = errors.New("Not enough observations: need two documents with characters")

// Obs is one document: its ground-truth characters and its errors.
type Obs struct {
	Count  int64
	Missed int64
}

type Interval struct {
	Observations int
	Characters   int64
	Errors       int64
	Accuracy     float64
	Lower        float64
	Upper        float64
}

func accuracy(count, missed int64) float64 {
	return 100.0 * float64(count-missed) / float64(count)
}

// Observations takes one observation per report.
func Observations(reports []*accrpt.Report) []Obs {
	obs := make([]Obs, len(reports))
	for i, r := range reports {
		obs[i] = Obs{r.Characters, r.Errors}
	}
	return obs
}

// Jackknife computes the approximate 95% interval from the leave-one-out
// pseudo-values, clamped to [0, 100].
func Jackknife(obs []Obs) (Interval, error) {
	var total Obs
	valid := 0
	for _, o := range obs {
		total.Count += o.Count
		total.Missed += o.Missed
		if o.Count > 0 {
			valid++
		}
	}
	if valid < 2 {
		return Interval{}, ErrTooFew
	}

	n := float64(len(obs))
	theta := accuracy(total.Count, total.Missed)
	pseudo := make([]float64, len(obs))
	sum := 0.0
	for i, o := range obs {
		t := accuracy(total.Count-o.Count, total.Missed-o.Missed)
		pseudo[i] = n*theta - (n-1)*t
		sum += t
	}
	mean := n*theta - (n-1)*sum/n
	ss := 0.0
	for _, j := range pseudo {
		ss += (j - mean) * (j - mean)
	}
	w := 1.96 * math.Sqrt(ss/(n-1)/n)

	return Interval{
		Observations: len(obs),
		Characters:   total.Count,
		Errors:       total.Missed,
		Accuracy:     theta,
		Lower:        clamp(mean - w),
		Upper:        clamp(mean + w),
	}, nil
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// String prints the interval in the layout of the ISRI accci program.
func (iv Interval) String() string {
	return fmt.Sprintf("%14d   Observations\n", iv.Observations) +
		fmt.Sprintf("%14d   Characters\n", iv.Characters) +
		fmt.Sprintf("%14d   Errors\n", iv.Errors) +
		fmt.Sprintf("%14.2f%%  Accuracy\n", iv.Accuracy) +
		fmt.Sprintf("%6.2f%%,%6.2f%%  Approximate 95%% Confidence Interval for Accuracy\n", iv.Lower, iv.Upper)
}
