// Package core holds the domain records and the leaf parsing logic
// (dates, amounts) everything else builds on.
//
// This file resolves the heterogeneous date strings found in bank CSV
// exports into calendar dates. Resolution is deliberately pattern-based:
// there is no fallback to time.Parse layouts, because a generic parser
// would silently apply locale-ambiguous month-first readings.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date is a resolved calendar date. Month is 1-12.
type Date struct {
	Year  int
	Month int
	Day   int
}

var (
	isoRe      = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	// Optional weekday abbreviation and time-of-day prefix, then
	// "12 March 2025" or "12 March, 2025".
	monthNameRe = regexp.MustCompile(`^(?:[A-Za-z]{3},?\s+)?(?:\d{1,2}:\d{2}(?::\d{2})?\s+)?(\d{1,2})\s+([A-Za-z]+),?\s+(\d{4})$`)
)

var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// ResolveDate parses a raw date cell. The second return value is false
// when no pattern applies; unparseable dates are a signal, never an error.
//
// Patterns, first match wins:
//  1. YYYY-M-D / YYYY/M/D (positional, unambiguous)
//  2. D-M-YYYY / D/M/YYYY, read day-first; N/N/YYYY is always day-first
//     regardless of whether a month-first reading would also be valid
//  3. "D MonthName YYYY" with full English month names, optionally led by
//     a weekday abbreviation and a time of day (both stripped)
func ResolveDate(raw string) (Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, false
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[2], m[1])
	}
	if m := monthNameRe.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[strings.ToLower(m[2])]
		if !ok {
			return Date{}, false
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		return checkDate(Date{Year: year, Month: month, Day: day})
	}
	return Date{}, false
}

func makeDate(y, m, d string) (Date, bool) {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	return checkDate(Date{Year: year, Month: month, Day: day})
}

// checkDate rejects out-of-range components instead of rolling them over.
// A slot value like month 15 means the pattern was the wrong reading for
// this input, so the whole date is unparseable.
func checkDate(d Date) (Date, bool) {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, false
	}
	return d, true
}

// MonthKey returns the zero-padded "YYYY-MM" bucket for a resolved date.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// MonthBucket resolves a raw date cell straight to its month bucket.
// The empty string means the date did not resolve.
func MonthBucket(raw string) string {
	d, ok := ResolveDate(raw)
	if !ok {
		return ""
	}
	return d.MonthKey()
}
