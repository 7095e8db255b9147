package rules

import (
	"testing"

	"tally/internal/core"
)

func TestCategorizeFirstMatchWins(t *testing.T) {
	rs := []core.Rule{
		{Keyword: "ab", Category: "X"},
		{Keyword: "ab cd", Category: "Y"},
	}
	txs := []core.Transaction{{RawDate: "2025-01-01", Amount: 5, Description: "AB CD STORE"}}
	Categorize(txs, rs)
	// Both rules match; the earlier one wins, not the more specific one.
	if txs[0].Category != "X" {
		t.Fatalf("got %q, want X", txs[0].Category)
	}
}

func TestCategorizeDefault(t *testing.T) {
	txs := []core.Transaction{{RawDate: "2025-01-01", Amount: 5, Description: "MYSTERY MERCHANT"}}
	Categorize(txs, []core.Rule{{Keyword: "shell", Category: "PETROL"}})
	if txs[0].Category != core.DefaultCategory {
		t.Fatalf("got %q, want %q", txs[0].Category, core.DefaultCategory)
	}
}

func TestCategorizePetrolOverride(t *testing.T) {
	rs := []core.Rule{{Keyword: "shell", Category: "PETROL"}}
	cases := []struct {
		amount float64
		want   string
	}{
		{1.50, "COFFEE"},
		{2.00, "COFFEE"},
		{2.01, "PETROL"},
		{-1.50, "COFFEE"}, // absolute value applies
		{50.00, "PETROL"},
	}
	for i, tc := range cases {
		txs := []core.Transaction{{RawDate: "2025-01-01", Amount: tc.amount, Description: "SHELL STN"}}
		Categorize(txs, rs)
		if txs[0].Category != tc.want {
			t.Fatalf("case %d (amount %v): got %q, want %q", i, tc.amount, txs[0].Category, tc.want)
		}
	}
}

func TestCategorizeOverrideNeedsMatch(t *testing.T) {
	// A tiny amount with no matching rule stays uncategorised; the
	// override never fires on the default.
	txs := []core.Transaction{{RawDate: "2025-01-01", Amount: 1.00, Description: "KIOSK"}}
	Categorize(txs, nil)
	if txs[0].Category != core.DefaultCategory {
		t.Fatalf("got %q, want %q", txs[0].Category, core.DefaultCategory)
	}
}

func TestCategorizeIdempotent(t *testing.T) {
	rs := []core.Rule{
		{Keyword: "shell", Category: "PETROL"},
		{Keyword: "coles", Category: "GROCERIES"},
	}
	txs := []core.Transaction{
		{RawDate: "2025-01-01", Amount: 40, Description: "SHELL STN"},
		{RawDate: "2025-01-02", Amount: 80, Description: "COLES 123"},
		{RawDate: "2025-01-03", Amount: 12, Description: "SOMETHING ELSE"},
	}
	Categorize(txs, rs)
	first := []string{txs[0].Category, txs[1].Category, txs[2].Category}
	Categorize(txs, rs)
	for i, tx := range txs {
		if tx.Category != first[i] {
			t.Fatalf("tx %d changed on second pass: %q -> %q", i, first[i], tx.Category)
		}
		if tx.Category == "" {
			t.Fatalf("tx %d has empty category", i)
		}
	}
}
