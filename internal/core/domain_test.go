package core

import (
	"math"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{RawDate: "2025-01-01", Amount: 12.5, Description: "COFFEE SHOP"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{RawDate: "2025-01-01", Amount: 0, Description: "x"},
		{RawDate: "2025-01-01", Amount: math.NaN(), Description: "x"},
		{RawDate: "2025-01-01", Amount: math.Inf(1), Description: "x"},
		{RawDate: "  ", Amount: 1, Description: ""},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestRuleValidate(t *testing.T) {
	if err := (Rule{Keyword: "shell", Category: "PETROL"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Rule{Keyword: " ", Category: "PETROL"}).Validate(); err == nil {
		t.Fatalf("expected error for empty keyword")
	}
	if err := (Rule{Keyword: "shell", Category: ""}).Validate(); err == nil {
		t.Fatalf("expected error for empty category")
	}
}

func TestCategoryOrDefault(t *testing.T) {
	cases := []struct {
		cat  string
		want string
	}{
		{"groceries", "GROCERIES"},
		{" Petrol ", "PETROL"},
		{"", DefaultCategory},
		{"   ", DefaultCategory},
	}
	for i, tc := range cases {
		tx := Transaction{Category: tc.cat}
		if got := tx.CategoryOrDefault(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestFilterStateMonthActive(t *testing.T) {
	if (FilterState{Month: ""}).MonthActive() {
		t.Fatalf("empty month should not be active")
	}
	if (FilterState{Month: "all"}).MonthActive() {
		t.Fatalf("all should not be active")
	}
	if (FilterState{Month: "ALL"}).MonthActive() {
		t.Fatalf("ALL should not be active")
	}
	if !(FilterState{Month: "2025-03"}).MonthActive() {
		t.Fatalf("2025-03 should be active")
	}
}
