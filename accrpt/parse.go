package accrpt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MalformedReportError is returned for text that is not an accuracy report.
// Line is 1-based; 0 means the input ended early.
type MalformedReportError struct {
	Line int
	Msg  string
}

func (e *MalformedReportError) Error() string {
	if e.Line == 0 {
		return "Malformed report: " + e.Msg
	}
	return fmt.Sprintf("Malformed report, line %d: %s", e.Line, e.Msg)
}

type parser struct {
	lines []string
	n     int // lines consumed
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &MalformedReportError{Line: p.n, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) more() bool {
	return p.n < len(p.lines)
}

func (p *parser) next(what string) (string, error) {
	if !p.more() {
		return "", &MalformedReportError{Msg: "missing " + what}
	}
	line := strings.TrimRight(p.lines[p.n], "\r")
	p.n++
	return line, nil
}

func (p *parser) blank() error {
	line, err := p.next("blank line")
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) != "" {
		return p.errorf("expected a blank line, got %q", line)
	}
	return nil
}

func (p *parser) header(what string, tokens ...string) error {
	line, err := p.next(what + " header")
	if err != nil {
		return err
	}
	if !sameTokens(line, tokens) {
		return p.errorf("expected %s header %q, got %q", what, strings.Join(tokens, " "), line)
	}
	return nil
}

func sameTokens(line string, tokens []string) bool {
	f := strings.Fields(line)
	if len(f) != len(tokens) {
		return false
	}
	for i := range f {
		if f[i] != tokens[i] {
			return false
		}
	}
	return true
}

// cut splits n whitespace separated fields off the front of line and returns
// them with the rest of the line.
func cut(line string, n int) ([]string, string, bool) {
	var fields []string
	rest := line
	for k := 0; k < n; k++ {
		rest = strings.TrimLeft(rest, " \t")
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		if end == 0 {
			return nil, "", false
		}
		fields = append(fields, rest[:end])
		rest = rest[end:]
	}
	return fields, strings.TrimLeft(rest, " \t"), true
}

func (p *parser) ints(fields []string) ([]int64, error) {
	v := make([]int64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil || n < 0 {
			return nil, p.errorf("%q is not a count", f)
		}
		v[i] = n
	}
	return v, nil
}

// value reads a "count   Label" line.
func (p *parser) value(label string) (int64, error) {
	line, err := p.next(label)
	if err != nil {
		return 0, err
	}
	f, rest, ok := cut(line, 1)
	if !ok || rest != label {
		return 0, p.errorf("expected %s, got %q", label, line)
	}
	v, err := p.ints(f)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// percentLine skips a derived percentage after checking its label.
func (p *parser) percentLine(label string) error {
	line, err := p.next(label)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(strings.TrimSpace(line), "%  "+label) {
		return p.errorf("expected %s, got %q", label, line)
	}
	return nil
}

func (p *parser) ops(label string) (Ops, error) {
	line, err := p.next(label + " operations")
	if err != nil {
		return Ops{}, err
	}
	f, rest, ok := cut(line, 4)
	if !ok || rest != label {
		return Ops{}, p.errorf("expected %s operations, got %q", label, line)
	}
	v, err := p.ints(f)
	if err != nil {
		return Ops{}, err
	}
	return Ops{v[0], v[1], v[2], v[3]}, nil
}

// row reads counts followed by a percentage and a label.
func (p *parser) row(line string, counts int) ([]int64, string, error) {
	f, rest, ok := cut(line, counts+1)
	if !ok || rest == "" {
		return nil, "", p.errorf("malformed row %q", line)
	}
	v, err := p.ints(f[:counts])
	if err != nil {
		return nil, "", err
	}
	if f[counts] != "------" {
		if _, err := strconv.ParseFloat(f[counts], 64); err != nil {
			return nil, "", p.errorf("%q is not a percentage", f[counts])
		}
	}
	return v, rest, nil
}

// Parse reads a report printed by Format, or by the ISRI accuracy program,
// back into a Report. Percentages are not read; they follow from the counts.
func Parse(text string) (*Report, error) {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	p := &parser{lines: lines}
	t := newTally()

	line, err := p.next("title")
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, titlePrefix) {
		return nil, p.errorf("not an accuracy report: %q", line)
	}
	if line, err = p.next("divider"); err != nil {
		return nil, err
	}
	if line == "" || strings.Trim(line, "-") != "" {
		return nil, p.errorf("expected a divider, got %q", line)
	}

	if t.characters, err = p.value("Characters"); err != nil {
		return nil, err
	}
	if t.errors, err = p.value("Errors"); err != nil {
		return nil, err
	}
	if err = p.percentLine("Accuracy"); err != nil {
		return nil, err
	}
	if err = p.blank(); err != nil {
		return nil, err
	}
	if t.rejectCharacters, err = p.value("Reject Characters"); err != nil {
		return nil, err
	}
	if t.suspectMarkers, err = p.value("Suspect Markers"); err != nil {
		return nil, err
	}
	if t.falseMarks, err = p.value("False Marks"); err != nil {
		return nil, err
	}
	if err = p.percentLine("Characters Marked"); err != nil {
		return nil, err
	}
	if err = p.percentLine("Accuracy After Correction"); err != nil {
		return nil, err
	}
	if err = p.blank(); err != nil {
		return nil, err
	}

	if err = p.header("operations", "Ins", "Subst", "Del", "Errors"); err != nil {
		return nil, err
	}
	if t.marked, err = p.ops("Marked"); err != nil {
		return nil, err
	}
	if t.unmarked, err = p.ops("Unmarked"); err != nil {
		return nil, err
	}
	if t.total, err = p.ops("Total"); err != nil {
		return nil, err
	}
	if err = p.blank(); err != nil {
		return nil, err
	}

	if err = p.header("class", "Count", "Missed", "%Right"); err != nil {
		return nil, err
	}
	if err = p.classes(t); err != nil {
		return nil, err
	}

	for p.more() {
		if err = p.blank(); err != nil {
			return nil, err
		}
		if line, err = p.next("section header"); err != nil {
			return nil, err
		}
		switch {
		case sameTokens(line, []string{"Errors", "Marked", "Correct-Generated"}):
			err = p.confusions(t)
		case sameTokens(line, []string{"Count", "Missed", "%Right"}):
			err = p.chars(t)
		default:
			err = p.errorf("unexpected section header %q", line)
		}
		if err != nil {
			return nil, err
		}
	}
	return t.report(), nil
}

func (p *parser) classes(t *tally) error {
	for {
		line, err := p.next("Total class row")
		if err != nil {
			return err
		}
		v, name, err := p.row(line, 2)
		if err != nil {
			return err
		}
		if name == "Total" {
			return nil
		}
		t.class(name, v[0], v[1])
	}
}

// sectionEnd is true at a blank line or the end of input.
func (p *parser) sectionEnd() bool {
	return !p.more() || strings.TrimSpace(p.lines[p.n]) == ""
}

func (p *parser) confusions(t *tally) error {
	for !p.sectionEnd() {
		line, _ := p.next("")
		f, key, ok := cut(line, 2)
		if !ok || key == "" {
			return p.errorf("malformed confusion %q", line)
		}
		v, err := p.ints(f)
		if err != nil {
			return err
		}
		correct, generated, err := parseConfusionKey(key)
		if err != nil {
			return p.errorf("%v", err)
		}
		t.confusion(correct, generated, v[0], v[1])
	}
	return nil
}

func (p *parser) chars(t *tally) error {
	for !p.sectionEnd() {
		line, _ := p.next("")
		v, key, err := p.row(line, 2)
		if err != nil {
			return err
		}
		c, err := parseCharKey(key)
		if err != nil {
			return p.errorf("%v", err)
		}
		t.char(c, v[0], v[1])
	}
	return nil
}

// Read parses a report from r.
func Read(r io.Reader) (*Report, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(buf))
}
