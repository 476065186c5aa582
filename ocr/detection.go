package ocr

import (
	"fmt"
	"strconv"
	"strings"
)

// Detection is the region, line, word (blw) layout of a page.
type Detection struct {
	AlgoID  string   `json:"algo"`
	Date    string   `json:"date"`
	Millis  uint32   `json:"millis"`
	Regions []Region `json:"regions"`
}

type Region struct {
	Confidence float32 `json:"conf"`
	Bounds     string  `json:"xywh"`
	Lines      []Line  `json:"lines"`
}

type Line struct {
	Confidence float32 `json:"conf"`
	Bounds     string  `json:"xywh"`
	Words      []Word  `json:"words"`
}

type Word struct {
	Confidence float32 `json:"conf"`
	Bounds     string  `json:"xywh"`
	Text       string  `json:"text"`
}

type Bounds struct {
	X, Y, W, H int
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.W, b.H)
}

// DecodeBounds parses "x,y,w,h".
func DecodeBounds(bounds string) (Bounds, error) {
	s := strings.SplitN(bounds, ",", 4)
	if len(s) != 4 {
		return Bounds{}, fmt.Errorf("Expected 4 fields. Found %d", len(s))
	}
	var v [4]int
	for i := range s {
		n, err := strconv.ParseInt(strings.TrimSpace(s[i]), 10, 64)
		if err != nil {
			return Bounds{}, err
		}
		v[i] = int(n)
	}
	return Bounds{v[0], v[1], v[2], v[3]}, nil
}

// CountRLW counts regions, lines and words.
func (d *Detection) CountRLW() (int, int, int) {
	r, l, w := len(d.Regions), 0, 0
	for _, region := range d.Regions {
		l += len(region.Lines)
		for _, line := range region.Lines {
			w += len(line.Words)
		}
	}
	return r, l, w
}

// Validate checks every bounding box.
func (d *Detection) Validate() error {
	check := func(where, b string) error {
		if _, err := DecodeBounds(b); err != nil {
			return fmt.Errorf("%s bounds %q: %v", where, b, err)
		}
		return nil
	}
	for i, region := range d.Regions {
		if err := check(fmt.Sprintf("region %d", i), region.Bounds); err != nil {
			return err
		}
		for j, line := range region.Lines {
			if err := check(fmt.Sprintf("region %d line %d", i, j), line.Bounds); err != nil {
				return err
			}
			for k, word := range line.Words {
				if err := check(fmt.Sprintf("region %d line %d word %d", i, j, k), word.Bounds); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Plaintext joins words with spaces, lines with newlines and regions with a
// blank line. The text ends with a newline unless there are no words.
func (d *Detection) Plaintext() string {
	var regions []string
	for _, region := range d.Regions {
		var lines []string
		for _, line := range region.Lines {
			words := make([]string, len(line.Words))
			for i, w := range line.Words {
				words[i] = w.Text
			}
			lines = append(lines, strings.Join(words, " "))
		}
		if len(lines) > 0 {
			regions = append(regions, strings.Join(lines, "\n"))
		}
	}
	if len(regions) == 0 {
		return ""
	}
	return strings.Join(regions, "\n\n") + "\n"
}
