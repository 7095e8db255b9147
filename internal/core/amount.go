package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount normalizes a currency-formatted cell ("$1,234.56", "€ -12.00")
// into a signed float. Every character except digits, minus, decimal point
// and thousands-comma is stripped, then commas removed, then the remainder
// parsed. Anything that still does not parse yields 0; ingestion must
// never stall on one bad cell, and zero-amount rows are dropped later
// anyway.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '.', r == ',':
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
