// Package citekey derives deterministic citation keys from bibliographic
// records.
//
// A key has the shape YEAR-MONTH-FIRSTAUTHORLAST-LASTAUTHORLAST. Year and
// month default to "0000" and "00"; author components are omitted when they
// cannot be derived, without leaving dangling hyphens. Records differing only
// in non-key fields produce the same key, which is what lets the merge step
// prefer an existing entry over a refetched one.
package citekey

import (
	"strings"
	"unicode"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
)

// monthCodes maps every accepted month spelling to its two-digit code.
var monthCodes = map[string]string{
	"1": "01", "01": "01", "jan": "01", "january": "01",
	"2": "02", "02": "02", "feb": "02", "february": "02",
	"3": "03", "03": "03", "mar": "03", "march": "03",
	"4": "04", "04": "04", "apr": "04", "april": "04",
	"5": "05", "05": "05", "may": "05",
	"6": "06", "06": "06", "jun": "06", "june": "06",
	"7": "07", "07": "07", "jul": "07", "july": "07",
	"8": "08", "08": "08", "aug": "08", "august": "08",
	"9": "09", "09": "09", "sep": "09", "september": "09",
	"10": "10", "oct": "10", "october": "10",
	"11": "11", "nov": "11", "november": "11",
	"12": "12", "dec": "12", "december": "12",
}

// UnknownMonth is returned for missing or unrecognized month values.
const UnknownMonth = "00"

// NormalizeMonth maps a month representation (numeric, zero-padded,
// abbreviated or full English name, any case) to its two-digit code.
// Anything unrecognized, including the empty string, yields UnknownMonth.
func NormalizeMonth(v string) string {
	if code, ok := monthCodes[strings.ToLower(strings.TrimSpace(v))]; ok {
		return code
	}
	return UnknownMonth
}

// StripNonASCII removes every rune outside the ASCII range. Removal is
// silent: "Ñuñez" becomes "uez", not "Nunez".
func StripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}

// Build derives the citation key for a record.
func Build(rec bibtex.Record) string {
	year := rec.Get("year")
	if year == "" {
		year = "0000"
	}
	month := NormalizeMonth(rec.Get("month"))

	first, last := authorTokens(StripNonASCII(rec.Get("author")))

	parts := []string{year, month}
	if first != "" {
		parts = append(parts, first)
	}
	if last != "" {
		parts = append(parts, last)
	}
	return strings.Join(parts, "-")
}

// authorTokens extracts the key components from an " and "-delimited list
// of "First Last" names: the first author's last name (the word token
// immediately before the first delimiter; absent for a single author) and
// the last author's last name (the final word token).
func authorTokens(authors string) (first, last string) {
	if head, _, found := strings.Cut(authors, " and "); found {
		if tokens := strings.Fields(head); len(tokens) > 0 {
			first = tokens[len(tokens)-1]
		}
	}
	if tokens := strings.Fields(authors); len(tokens) > 0 {
		last = tokens[len(tokens)-1]
	}
	return first, last
}
