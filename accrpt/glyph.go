package accrpt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// DottedCircle is printed before a combining mark so the mark has a base.
const DottedCircle = '◌'

var hexGlyph = regexp.MustCompile(`^<([0-9A-Fa-f]{2,6})>`)

func graphic(r rune) bool {
	return r == ' ' || unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Co)
}

// Render prints one character the way reports show it. Newline is <\n>,
// other invisible characters are their hex codepoint in angle brackets and
// combining marks follow a dotted circle.
func Render(r rune) string {
	switch {
	case r == '\n':
		return `<\n>`
	case graphic(r) && unicode.Is(unicode.M, r):
		return string(DottedCircle) + string(r)
	case graphic(r):
		return string(r)
	case r < 0x100:
		return fmt.Sprintf("<%02X>", r)
	}
	return fmt.Sprintf("<%04X>", r)
}

func RenderString(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(Render(r))
	}
	return b.String()
}

// nextGlyph undoes Render for the first character of s and reports how many
// bytes it used.
func nextGlyph(s string) (rune, int, error) {
	if strings.HasPrefix(s, `<\n>`) {
		return '\n', 4, nil
	}
	if m := hexGlyph.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil || v > unicode.MaxRune || utf16.IsSurrogate(rune(v)) {
			return 0, 0, fmt.Errorf("bad codepoint %s", m[0])
		}
		return rune(v), len(m[0]), nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, fmt.Errorf("invalid UTF-8")
	}
	if r == DottedCircle {
		mark, n := utf8.DecodeRuneInString(s[size:])
		if n > 0 && unicode.Is(unicode.M, mark) {
			return mark, size + n, nil
		}
	}
	return r, size, nil
}

func parseGlyphs(s string) (string, error) {
	var b strings.Builder
	for len(s) > 0 {
		r, n, err := nextGlyph(s)
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
		s = s[n:]
	}
	return b.String(), nil
}

// parseCharKey reads a character row label like {a}.
func parseCharKey(key string) (rune, error) {
	if len(key) < 3 || key[0] != '{' || key[len(key)-1] != '}' {
		return 0, fmt.Errorf("character %q is not in braces", key)
	}
	body := key[1 : len(key)-1]
	r, n, err := nextGlyph(body)
	if err != nil {
		return 0, fmt.Errorf("character %q: %v", key, err)
	}
	if n != len(body) {
		return 0, fmt.Errorf("character %q is more than one character", key)
	}
	return r, nil
}

// parseConfusionKey reads a label like {ä}-{a}. The correct side is read one
// glyph at a time so that a brace inside it is not taken for the separator.
func parseConfusionKey(key string) (string, string, error) {
	if len(key) < 5 || key[0] != '{' || key[len(key)-1] != '}' {
		return "", "", fmt.Errorf("confusion %q is not in braces", key)
	}
	body := key[1 : len(key)-1]
	var correct strings.Builder
	i := 0
	for !strings.HasPrefix(body[i:], "}-{") {
		if i >= len(body) {
			return "", "", fmt.Errorf("confusion %q has no }-{ separator", key)
		}
		r, n, err := nextGlyph(body[i:])
		if err != nil {
			return "", "", fmt.Errorf("confusion %q: %v", key, err)
		}
		correct.WriteRune(r)
		i += n
	}
	generated, err := parseGlyphs(body[i+3:])
	if err != nil {
		return "", "", fmt.Errorf("confusion %q: %v", key, err)
	}
	return correct.String(), generated, nil
}
