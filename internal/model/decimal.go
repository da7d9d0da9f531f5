package model

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimal parses a user-entered quantity or amount. The rules match the
// form's input convention: surrounding and internal whitespace is ignored,
// and the first comma acts as the decimal separator ("12,5" is 12.5).
// Anything unparsable, including the empty string, yields 0.
//
// Comma is always treated as a decimal separator here, never as a thousands
// separator, so "1,000" parses as 1.0. Known ambiguity, kept deliberately.
func ParseDecimal(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	s = strings.Replace(s, ",", ".", 1)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return value
}
