// Package view applies the month/category filters and slices the result
// into fixed-size pages for the transaction table.
package view

import (
	"sort"
	"strings"

	"tally/internal/core"
)

// Filter returns the transactions matching the filter state. Month and
// category compose with AND; category is matched by exact equality on the
// uppercased value, after the month restriction. When a month filter is
// active, transactions whose date does not resolve are excluded; without
// one, they stay in the set.
func Filter(txs []core.Transaction, f core.FilterState) []core.Transaction {
	out := txs
	if f.MonthActive() {
		monthly := make([]core.Transaction, 0, len(out))
		for _, tx := range out {
			if core.MonthBucket(tx.RawDate) == f.Month {
				monthly = append(monthly, tx)
			}
		}
		out = monthly
	}
	if cat := strings.ToUpper(strings.TrimSpace(f.Category)); cat != "" {
		matched := make([]core.Transaction, 0, len(out))
		for _, tx := range out {
			if tx.CategoryOrDefault() == cat {
				matched = append(matched, tx)
			}
		}
		out = matched
	}
	return out
}

// Months lists the distinct month buckets present in the set, newest
// first, for the month-dropdown. Unparseable dates contribute nothing.
func Months(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tx := range txs {
		key := core.MonthBucket(tx.RawDate)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Categories lists the distinct categories present in the set, sorted,
// for the category filter and the picker.
func Categories(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tx := range txs {
		cat := tx.CategoryOrDefault()
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
