package http

import (
	"strings"

	"tally/internal/core"
	"tally/internal/report"
)

// monthLabel turns the active month filter into a human report label.
func monthLabel(f core.FilterState) string {
	if !f.MonthActive() {
		return report.AllMonthsLabel
	}
	return f.Month
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
