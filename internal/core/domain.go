package core

import (
	"errors"
	"math"
	"strings"
)

// DefaultCategory is assigned to every transaction no rule matches.
const DefaultCategory = "UNCATEGORISED"

type (
	// Transaction is one imported bank row. RawDate keeps the original cell
	// text; date interpretation happens lazily through ResolveDate so rows
	// with unparseable dates still participate in everything except
	// month-based logic. Sign convention: positive = debit (expense),
	// negative = credit (income).
	Transaction struct {
		RawDate     string
		Amount      float64
		Description string
		Category    string
	}

	// Rule maps a lowercase keyword (possibly several space-separated
	// tokens) to an uppercase category. Rules are meaningful only as an
	// ordered list; the first matching rule wins.
	Rule struct {
		Keyword  string
		Category string
	}

	// FilterState is the view selection: a month bucket ("YYYY-MM", or
	// empty/"all" for no month restriction), an exact-match category, and
	// the current page of the transaction table.
	FilterState struct {
		Month    string
		Category string
		Page     int
	}

	// CategoryTotal is one aggregated row: signed sum and share of the
	// grand total.
	CategoryTotal struct {
		Category string
		Total    float64
		Percent  float64
	}

	// Summary splits the set into debits and credits. Credit is stored as
	// a positive magnitude; Net = Debit - Credit.
	Summary struct {
		Debit  float64
		Credit float64
		Net    float64
	}
)

var (
	ErrZeroAmount    = errors.New("zero or non-finite amount")
	ErrEmptyRow      = errors.New("empty date and description")
	ErrEmptyKeyword  = errors.New("empty keyword")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidPage   = errors.New("page must be at least 1")
)

// Validate enforces the load-time invariants: a transaction must carry a
// finite non-zero amount and at least one of date or description.
func (t Transaction) Validate() error {
	if t.Amount == 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrZeroAmount
	}
	if strings.TrimSpace(t.RawDate) == "" && strings.TrimSpace(t.Description) == "" {
		return ErrEmptyRow
	}
	return nil
}

func (r Rule) Validate() error {
	if strings.TrimSpace(r.Keyword) == "" {
		return ErrEmptyKeyword
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (f FilterState) Validate() error {
	if f.Page < 1 {
		return ErrInvalidPage
	}
	return nil
}

// CategoryOrDefault normalizes the category field for grouping and
// filtering: uppercased, with the reserved default for missing values.
func (t Transaction) CategoryOrDefault() string {
	c := strings.ToUpper(strings.TrimSpace(t.Category))
	if c == "" {
		return DefaultCategory
	}
	return c
}

// MonthActive reports whether the month filter restricts anything.
// Empty and "all" both mean "every month".
func (f FilterState) MonthActive() bool {
	return f.Month != "" && !strings.EqualFold(f.Month, "all")
}
