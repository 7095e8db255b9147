// Package ingest loads bank CSV exports into transaction records.
// Column positions are fixed by configuration, not discovered from
// headers; loading is best-effort and never fails on data shape: bad
// rows are dropped, counted, and reported alongside the survivors.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"tally/internal/core"
)

// Columns fixes where each field lives in a CSV row.
type Columns struct {
	Date        int
	Amount      int
	Description int
}

// MinFields returns the minimum row width that can hold all three columns.
func (c Columns) MinFields() int {
	min := c.Date
	if c.Amount > min {
		min = c.Amount
	}
	if c.Description > min {
		min = c.Description
	}
	return min + 1
}

// Result carries the surviving transactions plus drop accounting.
type Result struct {
	Transactions []core.Transaction
	Dropped      int
	HeaderSkip   bool
}

// Load reads comma-separated rows and builds the transaction set. If the
// amount cell of row 0 does not parse to a number, row 0 is treated as a
// header and skipped. A row survives only when it is wide enough, carries
// a date or a description, and its amount parses to a finite non-zero
// value. Only reader-level failures (broken input stream) return an
// error; malformed rows never do.
func Load(r io.Reader, cols Columns) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}

	var res Result
	for i, row := range rows {
		if len(row) < cols.MinFields() {
			res.Dropped++
			continue
		}
		if i == 0 && core.ParseAmount(row[cols.Amount]) == 0 {
			res.HeaderSkip = true
			continue
		}
		tx := core.Transaction{
			RawDate:     strings.TrimSpace(row[cols.Date]),
			Amount:      core.ParseAmount(row[cols.Amount]),
			Description: strings.TrimSpace(row[cols.Description]),
		}
		if tx.Validate() != nil {
			res.Dropped++
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}
	return res, nil
}
