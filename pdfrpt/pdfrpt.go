// Package pdfrpt renders accuracy reports as PDF documents.
package pdfrpt

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ughe/ocreval/accrpt"
)

const (
	fontSize = 9.0
	lineH    = 11.0
	margin   = 36.0
	barW     = 200.0
)

// The core Courier font only covers Latin-1, so anything else is printed as
// its codepoint.
func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || (r >= 0x7F && r < 0xA0) || r > 0xFF {
			fmt.Fprintf(&b, "<%04X>", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Render writes r as a PDF: a summary with one bar per character class
// followed by the full text report.
func Render(w io.Writer, title string, r *accrpt.Report) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("ocreval", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(latin1(s)) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 20, text(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	acc, ok := r.Accuracy()
	summary := fmt.Sprintf("%d characters, %d errors", r.Characters, r.Errors)
	if ok {
		summary += fmt.Sprintf(", %.2f%% accuracy", acc)
	}
	pdf.CellFormat(0, 16, summary, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for _, c := range r.Classes {
		right, ok := c.Right()
		if !ok {
			continue
		}
		x, y := pdf.GetXY()
		pdf.SetFillColor(220, 220, 220)
		pdf.Rect(x, y+2, barW, lineH-3, "F")
		pdf.SetFillColor(60, 120, 200)
		pdf.Rect(x, y+2, barW*right/100, lineH-3, "F")
		pdf.SetX(x + barW + 8)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, lineH, text(fmt.Sprintf("%6.2f%%  %s (%d)", right, c.Name, c.Count)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(lineH)

	pdf.SetFont("Courier", "", fontSize)
	for _, line := range strings.Split(strings.TrimSuffix(accrpt.Format(r), "\n"), "\n") {
		pdf.CellFormat(0, lineH, text(line), "", 1, "L", false, 0, "")
	}
	return pdf.Output(w)
}
