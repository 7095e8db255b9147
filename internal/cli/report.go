package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/report"
)

func newReportCommand() *cobra.Command {
	var flags statementFlags

	cmd := &cobra.Command{
		Use:   "report <statement.csv>",
		Short: "Print category totals for a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, _, err := flags.loadStatement(args[0])
			if err != nil {
				return err
			}

			totals := report.Aggregate(txs)
			fmt.Fprint(cmd.OutOrStdout(), report.RenderText(totals, flags.monthLabel()))

			summary := report.Summarize(txs)
			fmt.Fprintf(cmd.OutOrStdout(), "\nSpent %.2f  Received %.2f  Net %.2f\n",
				summary.Debit, summary.Credit, summary.Net)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
