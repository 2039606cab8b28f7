package util

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D+`)

// StripNonDigits drops every character outside 0-9.
func StripNonDigits(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// FormatDocument masks a CPF as XXX.XXX.XXX-XX. Partial input is masked partially.
func FormatDocument(raw string) string {
	return mask(raw, 11, map[int]byte{3: '.', 6: '.', 9: '-'})
}

// FormatPostalCode masks a CEP as XXXXX-XXX.
func FormatPostalCode(raw string) string {
	return mask(raw, 8, map[int]byte{5: '-'})
}

// FormatDate masks a date as DD/MM/YYYY.
func FormatDate(raw string) string {
	return mask(raw, 8, map[int]byte{2: '/', 4: '/'})
}

// mask keeps at most max digits of raw and writes sep[i] before the digit at index i.
func mask(raw string, max int, sep map[int]byte) string {
	d := StripNonDigits(raw)
	if len(d) > max {
		d = d[:max]
	}

	var sb strings.Builder
	sb.Grow(len(d) + len(sep))
	for i := 0; i < len(d); i++ {
		if c, ok := sep[i]; ok {
			sb.WriteByte(c)
		}
		sb.WriteByte(d[i])
	}

	return sb.String()
}
