// Package doc turns raw UTF-8 bytes into the codepoint sequences scored by
// the aligner.
package doc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Form selects the Unicode normalization applied after decoding.
type Form string

const (
	None Form = "none"
	NFC  Form = "nfc"
	NFD  Form = "nfd"
)

// ParseForm accepts "", "none", "nfc" and "nfd" in any case.
func ParseForm(s string) (Form, error) {
	switch f := Form(strings.ToLower(s)); f {
	case "", None:
		return None, nil
	case NFC, NFD:
		return f, nil
	}
	return None, fmt.Errorf("Unknown normalization form %q (want nfc, nfd or none)", s)
}

type Options struct {
	Form Form
	// Append a newline when the text does not end with one
	EnsureNewline bool
}

// DecodeError reports the first byte that is not part of a valid UTF-8
// sequence.
type DecodeError struct {
	Offset int
	Byte   byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 byte 0x%02X at offset %d", e.Byte, e.Offset)
}

// Decode validates buf and returns its codepoints. Invalid input is an error,
// never replaced, so that counts are not silently skewed.
func Decode(buf []byte, opts Options) ([]rune, error) {
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, &DecodeError{Offset: i, Byte: buf[i]}
		}
		i += size
	}
	switch opts.Form {
	case NFC:
		buf = norm.NFC.Bytes(buf)
	case NFD:
		buf = norm.NFD.Bytes(buf)
	}
	text := []rune(string(buf))
	if opts.EnsureNewline && (len(text) == 0 || text[len(text)-1] != '\n') {
		text = append(text, '\n')
	}
	return text, nil
}

// DecodeString is Decode for text already held as a string.
func DecodeString(s string, opts Options) ([]rune, error) {
	return Decode([]byte(s), opts)
}
