package accrpt

import (
	"fmt"
	"io"
	"strings"
)

const (
	Title = "UNLV-ISRI OCR Accuracy Report Version 6.1"
	// Parse accepts any version with this prefix.
	titlePrefix = "UNLV-ISRI OCR Accuracy Report Version"
	divider     = "-----------------------------------------"

	opsHeader       = "     Ins    Subst      Del   Errors"
	countHeader     = "   Count   Missed   %Right"
	confusionHeader = "  Errors   Marked   Correct-Generated"
)

func writePercent(b *strings.Builder, v float64, ok bool) {
	if !ok {
		b.WriteString("  ------")
		return
	}
	fmt.Fprintf(b, "%8.2f", v)
}

func writeOps(b *strings.Builder, o Ops, label string) {
	fmt.Fprintf(b, "%8d %8d %8d %8d   %s\n", o.Ins, o.Subst, o.Del, o.Errors, label)
}

func writeClass(b *strings.Builder, c ClassStat) {
	fmt.Fprintf(b, "%8d %8d ", c.Count, c.Missed)
	v, ok := c.Right()
	writePercent(b, v, ok)
	fmt.Fprintf(b, "   %s\n", c.Name)
}

func writeChar(b *strings.Builder, c CharStat) {
	fmt.Fprintf(b, "%8d %8d ", c.Count, c.Missed)
	v, ok := c.Right()
	writePercent(b, v, ok)
	fmt.Fprintf(b, "   {%s}\n", Render(c.Char))
}

// Format prints r in the fixed-width layout of the ISRI accuracy program.
// The confusion and character sections are left out when they have no rows.
func Format(r *Report) string {
	var b strings.Builder
	b.WriteString(Title + "\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "%8d   Characters\n", r.Characters)
	fmt.Fprintf(&b, "%8d   Errors\n", r.Errors)
	v, ok := r.Accuracy()
	writePercent(&b, v, ok)
	b.WriteString("%  Accuracy\n\n")

	fmt.Fprintf(&b, "%8d   Reject Characters\n", r.RejectCharacters)
	fmt.Fprintf(&b, "%8d   Suspect Markers\n", r.SuspectMarkers)
	fmt.Fprintf(&b, "%8d   False Marks\n", r.FalseMarks)
	v, ok = r.CharactersMarked()
	writePercent(&b, v, ok)
	b.WriteString("%  Characters Marked\n")
	v, ok = r.AccuracyAfterCorrection()
	writePercent(&b, v, ok)
	b.WriteString("%  Accuracy After Correction\n\n")

	b.WriteString(opsHeader + "\n")
	writeOps(&b, r.Marked, "Marked")
	writeOps(&b, r.Unmarked, "Unmarked")
	writeOps(&b, r.Total, "Total")

	b.WriteString("\n" + countHeader + "\n")
	for _, c := range r.Classes {
		writeClass(&b, c)
	}
	writeClass(&b, r.TotalClass())

	if len(r.Confusions) > 0 {
		b.WriteString("\n" + confusionHeader + "\n")
		for _, c := range r.Confusions {
			fmt.Fprintf(&b, "%8d %8d   %s\n", c.Errors, c.Marked, c.Key())
		}
	}

	if len(r.Chars) > 0 {
		b.WriteString("\n" + countHeader + "\n")
		for _, c := range r.Chars {
			writeChar(&b, c)
		}
	}
	return b.String()
}

// Write prints r to w.
func Write(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, Format(r))
	return err
}
