package validation

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Date layouts accepted for text dates. Day-first layouts come before
// month-first ones because source spreadsheets use dd/mm/yyyy.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"01/02/2006 15:04:05",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// RemoveDiacritics strips combining marks so that accented Latin letters
// become their base letter ("josé" -> "jose").
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeEmail trims the address and removes diacritics
func NormalizeEmail(email string) string {
	return RemoveDiacritics(strings.TrimSpace(email))
}

// ParseDate parses a text date in any accepted layout, nil when unparseable
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
