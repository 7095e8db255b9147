package report

import (
	"fmt"
	"strings"
)

// AllMonthsLabel is the title label when no month filter is active.
const AllMonthsLabel = "All months"

// RenderText renders the category totals as the fixed-width export report:
// a title naming the active month (or "All months"), an '=' underline of
// the title's length, Category/Amount/% column headers, one row per
// category, and a trailing TOTAL row. Amounts use 2 decimals, percentages
// 1 decimal with a '%' suffix, both right-aligned.
func RenderText(t Totals, monthLabel string) string {
	if strings.TrimSpace(monthLabel) == "" {
		monthLabel = AllMonthsLabel
	}
	title := "Category totals - " + monthLabel

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	b.WriteString(fmt.Sprintf("%-22s %12s %9s\n", "Category", "Amount", "%"))
	for _, row := range t.Rows {
		b.WriteString(fmt.Sprintf("%-22s %12.2f %8.1f%%\n", row.Category, row.Total, row.Percent))
	}
	totalPct := 0.0
	if t.GrandTotal != 0 {
		totalPct = 100.0
	}
	b.WriteString(fmt.Sprintf("%-22s %12.2f %8.1f%%\n", "TOTAL", t.GrandTotal, totalPct))
	return b.String()
}
