// Package dateutils parses the date formats found in bank statement exports.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts
const (
	DateLayoutISO        = "2006-01-02"
	DateLayoutISODT      = "2006-01-02 15:04:05"
	DateLayoutDayFirst   = "02/01/2006"
	DateLayoutDayFirstDT = "02/01/2006 15:04:05"
	DateLayoutEuropean   = "02.01.2006"
	DateLayoutDashed     = "02-01-2006"
	DateLayoutUS         = "01/02/2006"
)

// DayFirstFormats are tried in order when the statement writes the day first.
var DayFirstFormats = []string{
	DateLayoutDayFirst,
	DateLayoutDayFirstDT,
	"02/01/2006 15:04",
	"2/1/2006",
	"02/01/06",
	DateLayoutEuropean,
	"2.1.2006",
	DateLayoutDashed,
	DateLayoutISO,
	DateLayoutISODT,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02 Jan 2006",
	"2 January 2006",
}

// MonthFirstFormats are tried in order when day-first parsing is disabled.
var MonthFirstFormats = []string{
	DateLayoutUS,
	"01/02/2006 15:04:05",
	"1/2/2006",
	"01-02-2006",
	DateLayoutISO,
	DateLayoutISODT,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims the value and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseStatementDate parses a statement date cell. dayFirst selects whether
// ambiguous values such as 03/04/2024 are read as 3 April or March 4.
func ParseStatementDate(dateStr string, dayFirst bool) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	formats := MonthFirstFormats
	if dayFirst {
		formats = DayFirstFormats
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a date as YYYY-MM-DD, or "" for nil.
func ToISODate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(DateLayoutISO)
}
