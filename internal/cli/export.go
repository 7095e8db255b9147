package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/report"
)

func newExportCommand() *cobra.Command {
	var flags statementFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export <statement.csv>",
		Short: "Write category totals and transactions to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, _, err := flags.loadStatement(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating workbook: %w", err)
			}
			defer f.Close()

			totals := report.Aggregate(txs)
			if err := report.WriteXLSX(f, totals, txs, flags.monthLabel()); err != nil {
				return fmt.Errorf("writing workbook: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d transactions)\n", out, len(txs))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "report.xlsx", "output workbook path")
	return cmd
}
