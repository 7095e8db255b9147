package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/core"
	"tally/internal/ingest"
	"tally/internal/report"
	"tally/internal/rules"
)

// statementFlags are the input options shared by every subcommand.
type statementFlags struct {
	rulesPath string
	dateCol   int
	amountCol int
	descCol   int
	month     string
}

func (f *statementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rulesPath, "rules", "", "path to a rules file (keyword => CATEGORY per line)")
	cmd.Flags().IntVar(&f.dateCol, "date-col", 0, "0-based CSV column holding the date")
	cmd.Flags().IntVar(&f.amountCol, "amount-col", 1, "0-based CSV column holding the amount")
	cmd.Flags().IntVar(&f.descCol, "desc-col", 2, "0-based CSV column holding the description")
	cmd.Flags().StringVar(&f.month, "month", "", "restrict to one month (YYYY-MM)")
}

func (f *statementFlags) columns() ingest.Columns {
	return ingest.Columns{Date: f.dateCol, Amount: f.amountCol, Description: f.descCol}
}

// loadStatement reads and categorizes a statement file. The returned
// set is already filtered when a month was requested.
func (f *statementFlags) loadStatement(path string) ([]core.Transaction, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening statement: %w", err)
	}
	defer file.Close()

	res, err := ingest.Load(file, f.columns())
	if err != nil {
		return nil, 0, fmt.Errorf("reading statement: %w", err)
	}

	var rs []core.Rule
	if f.rulesPath != "" {
		text, err := os.ReadFile(f.rulesPath)
		if err != nil {
			return nil, 0, fmt.Errorf("reading rules: %w", err)
		}
		rs = rules.Parse(string(text))
	}
	rules.Categorize(res.Transactions, rs)

	txs := res.Transactions
	if f.month != "" {
		kept := txs[:0:0]
		for _, tx := range txs {
			if core.MonthBucket(tx.RawDate) == f.month {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	return txs, res.Dropped, nil
}

func (f *statementFlags) monthLabel() string {
	if f.month == "" {
		return report.AllMonthsLabel
	}
	return f.month
}
