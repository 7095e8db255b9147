package rules

import (
	"math"
	"strings"

	"tally/internal/core"
)

// Small fuel-station charges are assumed to be in-store snack purchases,
// not fuel, so a matched PETROL rule at or under this magnitude is
// rewritten to COFFEE. The override fires only on an actual rule match,
// never on the default category.
const (
	petrolCategory        = "PETROL"
	petrolOverrideTo      = "COFFEE"
	petrolOverrideCeiling = 2.00
)

// Categorize assigns exactly one category to every transaction, in place.
// Per transaction: scan the rule list in order, take the category of the
// first rule whose keyword matches, apply the small-amount petrol
// override, and fall back to core.DefaultCategory when nothing matched.
// The pass is a pure function of (transaction, rule list), so re-running
// it over the same inputs is idempotent; callers re-run it over the whole
// set whenever rules or transactions change.
func Categorize(txs []core.Transaction, rs []core.Rule) {
	for i := range txs {
		txs[i].Category = categoryFor(txs[i], rs)
	}
}

func categoryFor(tx core.Transaction, rs []core.Rule) string {
	for _, r := range rs {
		if !Matches(tx.Description, r.Keyword) {
			continue
		}
		cat := r.Category
		if strings.EqualFold(cat, petrolCategory) && math.Abs(tx.Amount) <= petrolOverrideCeiling {
			return petrolOverrideTo
		}
		return cat
	}
	return core.DefaultCategory
}
