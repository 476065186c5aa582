package accrpt

import "strings"

// Group picks the character rows of r for the characters of group, in the
// order they first appear in group. Spaces, newlines and characters that do
// not occur in r are skipped.
func Group(r *Report, group []rune) []CharStat {
	seen := make(map[rune]bool)
	var rows []CharStat
	for _, c := range group {
		if c == ' ' || c == '\n' || seen[c] {
			continue
		}
		seen[c] = true
		if s, ok := r.Char(c); ok && s.Count > 0 {
			rows = append(rows, s)
		}
	}
	return rows
}

// FormatGroup prints rows in the character table layout followed by their
// Total.
func FormatGroup(rows []CharStat) string {
	var b strings.Builder
	b.WriteString(countHeader + "\n")
	total := ClassStat{Name: "Total"}
	for _, c := range rows {
		writeChar(&b, c)
		total.Count += c.Count
		total.Missed += c.Missed
	}
	writeClass(&b, total)
	return b.String()
}
