package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"tally/internal/core"
)

// WriteXLSX writes a two-sheet workbook: the category totals (with the
// TOTAL row) and the transaction list the totals were computed from.
func WriteXLSX(w io.Writer, t Totals, txs []core.Transaction, monthLabel string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	f.SetSheetName("Sheet1", "Totals")
	if _, err := f.NewSheet("Transactions"); err != nil {
		return fmt.Errorf("create transactions sheet: %w", err)
	}

	if err := writeTotalsSheet(f, t, monthLabel); err != nil {
		return err
	}
	if err := writeTransactionsSheet(f, txs); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTotalsSheet(f *excelize.File, t Totals, monthLabel string) error {
	const sheet = "Totals"
	if monthLabel == "" {
		monthLabel = AllMonthsLabel
	}
	if err := f.SetCellValue(sheet, "A1", "Category totals - "+monthLabel); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	headers := []string{"Category", "Amount", "%"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", h, err)
		}
	}
	row := 3
	for _, r := range t.Rows {
		values := []any{r.Category, r.Total, r.Percent}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set row %d: %w", row, err)
			}
		}
		row++
	}
	totalPct := 0.0
	if t.GrandTotal != 0 {
		totalPct = 100.0
	}
	for i, v := range []any{"TOTAL", t.GrandTotal, totalPct} {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set total row: %w", err)
		}
	}
	return nil
}

func writeTransactionsSheet(f *excelize.File, txs []core.Transaction) error {
	const sheet = "Transactions"
	headers := []string{"Date", "Description", "Amount", "Category"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", h, err)
		}
	}
	for n, tx := range txs {
		values := []any{tx.RawDate, tx.Description, tx.Amount, tx.CategoryOrDefault()}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, n+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set transaction row %d: %w", n+2, err)
			}
		}
	}
	return nil
}
