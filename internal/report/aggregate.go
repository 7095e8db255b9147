// Package report computes the derived views over a categorized transaction
// set: per-category totals with percentages, the debit/credit/net summary,
// and the exportable renderings (fixed-width text, XLSX, Google Sheets
// rows). Nothing here is stored; every report is recomputed from scratch
// from the current set.
package report

import (
	"sort"

	"tally/internal/core"
)

// Totals is the aggregated category view.
type Totals struct {
	Rows       []core.CategoryTotal
	GrandTotal float64
}

// Aggregate groups transactions by uppercased category (missing categories
// group under the default), summing raw signed amounts so debits and
// credits offset within a category. Rows come back sorted by total
// descending; ties keep first-seen order. Percent is the row's share of
// the grand total, 0 when the grand total is 0.
func Aggregate(txs []core.Transaction) Totals {
	index := make(map[string]int)
	var rows []core.CategoryTotal
	var grand float64

	for _, tx := range txs {
		cat := tx.CategoryOrDefault()
		i, ok := index[cat]
		if !ok {
			i = len(rows)
			index[cat] = i
			rows = append(rows, core.CategoryTotal{Category: cat})
		}
		rows[i].Total += tx.Amount
		grand += tx.Amount
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Total > rows[b].Total
	})
	for i := range rows {
		if grand != 0 {
			rows[i].Percent = rows[i].Total / grand * 100
		}
	}
	return Totals{Rows: rows, GrandTotal: grand}
}

// Summarize splits the set into debit (amounts > 0) and credit (amounts
// <= 0, accumulated by magnitude) totals. Net = Debit - Credit.
func Summarize(txs []core.Transaction) core.Summary {
	var s core.Summary
	for _, tx := range txs {
		if tx.Amount > 0 {
			s.Debit += tx.Amount
		} else {
			s.Credit += -tx.Amount
		}
	}
	s.Net = s.Debit - s.Credit
	return s
}
